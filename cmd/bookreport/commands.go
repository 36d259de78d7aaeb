package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bookreport/internal/config"
	"bookreport/internal/core/domain/models"
	"bookreport/internal/core/service"
)

type searchOptions struct {
	query       string
	author      string
	title       string
	subject     string
	language    string
	apiKey      string
	limit       int
	interactive bool
}

func (o *searchOptions) facetsEmpty() bool {
	return o.query == "" && o.author == "" && o.title == "" && o.subject == ""
}

func newOpenLibraryCmd() *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "openlibrary",
		Short: "Search Open Library and generate HTML/CSV reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, service.ProviderOpenLibrary, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text search query")
	cmd.Flags().StringVarP(&opts.author, "author", "a", "", "author facet")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "title facet")
	cmd.Flags().StringVarP(&opts.subject, "subject", "s", "", "subject facet")
	cmd.Flags().StringVar(&opts.language, "lang", "", "language code (e.g. eng)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 10, "max results (<=100)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for each facet")
	return cmd
}

func newGoogleBooksCmd() *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "googlebooks",
		Short: "Search Google Books and generate HTML/CSV reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, service.ProviderGoogleBooks, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text search query")
	cmd.Flags().StringVarP(&opts.author, "author", "a", "", "author facet")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "title facet")
	cmd.Flags().StringVarP(&opts.subject, "subject", "s", "", "subject facet")
	cmd.Flags().StringVar(&opts.language, "lang", "", "language code (e.g. en, cs)")
	cmd.Flags().StringVar(&opts.apiKey, "apikey", "", "Google Books API key (optional)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 10, "max results (<=40)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for each facet")
	return cmd
}

func runSearch(cmd *cobra.Command, provider string, opts searchOptions) error {
	out := cmd.OutOrStdout()

	if opts.interactive || opts.facetsEmpty() {
		promptSearch(cmd.InOrStdin(), out, provider, &opts)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.apiKey != "" {
		cfg.GoogleAPIKey = opts.apiKey
	}

	src, renderer, err := service.CreateProvider(cfg, provider)
	if err != nil {
		return err
	}

	req := models.SearchRequest{
		Text:     opts.query,
		Author:   opts.author,
		Title:    opts.title,
		Subject:  opts.subject,
		Language: opts.language,
		Limit:    opts.limit,
	}

	fmt.Fprintf(out, "Searching: %s\n", req.Query())

	svc := service.NewReportService(cfg, src, renderer)
	res, files, err := svc.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	if files == nil {
		fmt.Fprintln(out, "No books found!")
		return nil
	}

	printReport(out, res, files)
	return nil
}

func printReport(out io.Writer, res models.SearchResult, files *service.ReportFiles) {
	fmt.Fprintf(out, "HTML saved: %s\n", files.HTMLPath)
	fmt.Fprintf(out, "CSV saved: %s\n", files.CSVPath)
	fmt.Fprintf(out, "Found %d books (showing %d)\n", res.Total, len(res.Books))
}
