package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookreport",
		Short: "Search book-metadata providers and write HTML/CSV reports",
	}
	root.AddCommand(newOpenLibraryCmd())
	root.AddCommand(newGoogleBooksCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
