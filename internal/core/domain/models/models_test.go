package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRequest_Query(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		want string
	}{
		{
			name: "author and title facets",
			req:  SearchRequest{Author: "Tolkien", Title: "Hobbit"},
			want: `author:"Tolkien" AND title:"Hobbit"`,
		},
		{
			name: "all empty is wildcard",
			req:  SearchRequest{},
			want: "*",
		},
		{
			name: "free text only",
			req:  SearchRequest{Text: "dune"},
			want: "dune",
		},
		{
			name: "language is unquoted",
			req:  SearchRequest{Subject: "fantasy", Language: "eng"},
			want: `subject:"fantasy" AND language:eng`,
		},
		{
			name: "free text precedes facets",
			req:  SearchRequest{Text: "middle earth", Author: "Tolkien"},
			want: `middle earth AND author:"Tolkien"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Query())
		})
	}
}

func TestSearchRequest_Label(t *testing.T) {
	assert.Equal(t, "dune Herbert", SearchRequest{Text: "dune", Author: "Herbert"}.Label())
	assert.Equal(t, "", SearchRequest{Language: "eng"}.Label())
}
