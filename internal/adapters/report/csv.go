package report

import (
	"bookreport/internal/core/domain/models"
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

var openLibraryColumns = []string{
	"title", "authors", "first_year", "publishers", "pages",
	"rating", "popularity", "availability", "level", "url",
}

func (*OpenLibraryRenderer) RenderCSV(res models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(openLibraryColumns); err != nil {
		return nil, err
	}

	for _, b := range res.Books {
		// Publishers cap at the first two entries.
		publishers := b.Publishers
		if len(publishers) > 2 {
			publishers = publishers[:2]
		}
		row := []string{
			b.Title,
			strings.Join(b.Authors, "; "),
			intField(b.FirstYear),
			strings.Join(publishers, "; "),
			intField(b.Pages),
			floatField(b.Rating),
			formatScore(b.Popularity),
			b.Availability,
			b.Level,
			b.DetailURL,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var googleBooksColumns = []string{
	"title", "subtitle", "authors", "publisher", "publishedDate",
	"pageCount", "categories", "language", "isbn_10", "isbn_13",
	"avg_rating", "ratings_count", "previewLink", "infoLink", "popularity",
}

func (*GoogleBooksRenderer) RenderCSV(res models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(googleBooksColumns); err != nil {
		return nil, err
	}

	for _, b := range res.Books {
		row := []string{
			b.Title,
			b.Subtitle,
			strings.Join(b.Authors, "; "),
			strings.Join(b.Publishers, "; "),
			b.PublishedDate,
			intField(b.Pages),
			strings.Join(b.Subjects, "; "),
			b.Language,
			b.ISBN10,
			b.ISBN13,
			floatField(b.Rating),
			intField(b.RatingCount),
			b.PreviewLink,
			b.InfoLink,
			formatScore(b.Popularity),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func intField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatField(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
