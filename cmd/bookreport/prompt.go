package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookreport/internal/core/service"
)

// promptSearch fills the options interactively, one question per facet.
// Existing flag values are kept as defaults when the answer is empty.
func promptSearch(in io.Reader, out io.Writer, provider string, opts *searchOptions) {
	r := bufio.NewReader(in)

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	if provider == service.ProviderGoogleBooks {
		fmt.Fprintln(out, "GOOGLE BOOKS SEARCH")
	} else {
		fmt.Fprintln(out, "OPEN LIBRARY BOOK SEARCH")
	}
	fmt.Fprintln(out, strings.Repeat("=", 60))

	opts.query = askDefault(r, out, "\nSearch query: ", opts.query)
	if provider == service.ProviderOpenLibrary {
		opts.author = askDefault(r, out, "Author: ", opts.author)
		opts.title = askDefault(r, out, "Title: ", opts.title)
		opts.subject = askDefault(r, out, "Subject: ", opts.subject)
	}

	opts.limit = askLimit(r, out)

	if provider == service.ProviderGoogleBooks {
		opts.language = askDefault(r, out, "Language code (optional): ", opts.language)
		opts.apiKey = askDefault(r, out, "Google API key (optional): ", opts.apiKey)
	}
}

func askDefault(r *bufio.Reader, out io.Writer, prompt, def string) string {
	fmt.Fprint(out, prompt)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// askLimit reads the result count; anything unparseable silently
// defaults to 10.
func askLimit(r *bufio.Reader, out io.Writer) int {
	fmt.Fprint(out, "How many books (default 10): ")
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return 10
	}
	n, err := strconv.Atoi(line)
	if err != nil || n <= 0 {
		return 10
	}
	return n
}
