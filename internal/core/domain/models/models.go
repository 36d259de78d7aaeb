package models

import (
	"strings"
)

// SearchRequest carries the user-supplied search facets and the requested
// result count. It is constructed once by the CLI and never mutated.
type SearchRequest struct {
	Text     string
	Author   string
	Title    string
	Subject  string
	Language string
	Limit    int
}

// Query composes the provider query string. Non-empty facets render as
// field:"value" clauses (language is unquoted), joined with AND. An
// all-empty request matches everything.
func (r SearchRequest) Query() string {
	var parts []string
	if r.Text != "" {
		parts = append(parts, r.Text)
	}
	if r.Author != "" {
		parts = append(parts, `author:"`+r.Author+`"`)
	}
	if r.Title != "" {
		parts = append(parts, `title:"`+r.Title+`"`)
	}
	if r.Subject != "" {
		parts = append(parts, `subject:"`+r.Subject+`"`)
	}
	if r.Language != "" {
		parts = append(parts, "language:"+r.Language)
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " AND ")
}

// Label returns the human-readable echo of the request used in report
// headers, without the field syntax.
func (r SearchRequest) Label() string {
	var parts []string
	for _, s := range []string{r.Text, r.Author, r.Title, r.Subject} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Book is the canonical, provider-agnostic record consumed by both
// renderers. Optional scalars are pointers so that "absent" survives
// normalization; list fields are never nil, only empty.
type Book struct {
	Key       string
	DetailURL string

	Title      string
	Subtitle   string
	Authors    []string
	Publishers []string
	Subjects   []string

	FirstYear     *int
	PublishedDate string
	Pages         *int

	ISBNs    []string
	ISBN10   string
	ISBN13   string
	OtherIDs []string

	CoverURL string

	Rating      *float64
	RatingCount *int

	// Open Library engagement counters and catalog signals.
	WantToRead   int
	ReadingNow   int
	HaveRead     int
	Editions     int
	Availability string
	Level        string

	// Google Books extras.
	Language    string
	Description string
	PreviewLink string
	InfoLink    string
	Saleability string
	Price       *float64

	Popularity float64
}

// SearchResult is a successful provider response. Zero matches is a valid
// result (Total == 0); fetch failures are reported as errors by the
// source adapter, never folded into an empty result.
type SearchResult struct {
	Books []Book
	Total int
}
