package main

import (
	"bookreport/internal/core/service"
	"bytes"
	"strings"
	"testing"
)

func TestPromptSearch_OpenLibraryFacets(t *testing.T) {
	in := strings.NewReader("dune\nHerbert\n\nsci-fi\n25\n")
	var out bytes.Buffer

	opts := searchOptions{}
	promptSearch(in, &out, service.ProviderOpenLibrary, &opts)

	if opts.query != "dune" {
		t.Errorf("query = %q", opts.query)
	}
	if opts.author != "Herbert" {
		t.Errorf("author = %q", opts.author)
	}
	if opts.title != "" {
		t.Errorf("empty answer should leave title empty, got %q", opts.title)
	}
	if opts.subject != "sci-fi" {
		t.Errorf("subject = %q", opts.subject)
	}
	if opts.limit != 25 {
		t.Errorf("limit = %d", opts.limit)
	}
}

func TestPromptSearch_MalformedLimitDefaultsToTen(t *testing.T) {
	tests := []string{"abc", "-3", ""}
	for _, answer := range tests {
		in := strings.NewReader("q\n\n\n\n" + answer + "\n")
		var out bytes.Buffer

		opts := searchOptions{}
		promptSearch(in, &out, service.ProviderOpenLibrary, &opts)

		if opts.limit != 10 {
			t.Errorf("limit answer %q: expected default 10, got %d", answer, opts.limit)
		}
	}
}

func TestPromptSearch_GoogleBooksAsksLangAndKey(t *testing.T) {
	in := strings.NewReader("dune\n15\ncs\nkey123\n")
	var out bytes.Buffer

	opts := searchOptions{}
	promptSearch(in, &out, service.ProviderGoogleBooks, &opts)

	if opts.query != "dune" || opts.limit != 15 {
		t.Errorf("query=%q limit=%d", opts.query, opts.limit)
	}
	if opts.language != "cs" {
		t.Errorf("language = %q", opts.language)
	}
	if opts.apiKey != "key123" {
		t.Errorf("apiKey = %q", opts.apiKey)
	}
	if !strings.Contains(out.String(), "GOOGLE BOOKS SEARCH") {
		t.Error("expected banner in prompt output")
	}
}

func TestFacetsEmpty(t *testing.T) {
	if !(&searchOptions{}).facetsEmpty() {
		t.Error("empty options should report empty facets")
	}
	if (&searchOptions{author: "x"}).facetsEmpty() {
		t.Error("author flag should count as a query")
	}
}
