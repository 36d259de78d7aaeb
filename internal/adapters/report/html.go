package report

import (
	"bookreport/internal/core/domain/models"
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
	"firstN": func(n int, xs []string) []string {
		if len(xs) > n {
			return xs[:n]
		}
		return xs
	},
	"truncate": func(n int, s string) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n]) + "..."
	},
	// Cover and detail-page links are emitted verbatim.
	"asURL": func(s string) template.URL { return template.URL(s) },
	"intOr": func(p *int, fallback string) string {
		if p == nil {
			return fallback
		}
		return strconv.Itoa(*p)
	},
	"intVal": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"floatOr": func(p *float64, fallback string) string {
		if p == nil {
			return fallback
		}
		return strconv.FormatFloat(*p, 'g', -1, 64)
	},
	"score": func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	},
}).ParseFS(templateFS, "templates/*.tmpl"))

// htmlData is the payload for both report templates.
type htmlData struct {
	Query       string
	Total       int
	Shown       int
	GeneratedAt string
	Books       []models.Book
}

func renderHTML(name string, res models.SearchResult, req models.SearchRequest, generatedAt time.Time) ([]byte, error) {
	data := htmlData{
		Query:       req.Label(),
		Total:       res.Total,
		Shown:       len(res.Books),
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		Books:       res.Books,
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type OpenLibraryRenderer struct{}

func NewOpenLibraryRenderer() *OpenLibraryRenderer { return &OpenLibraryRenderer{} }

func (*OpenLibraryRenderer) FilePrefix() string { return "books" }

func (*OpenLibraryRenderer) RenderHTML(res models.SearchResult, req models.SearchRequest, generatedAt time.Time) ([]byte, error) {
	return renderHTML("openlibrary.html.tmpl", res, req, generatedAt)
}

type GoogleBooksRenderer struct{}

func NewGoogleBooksRenderer() *GoogleBooksRenderer { return &GoogleBooksRenderer{} }

func (*GoogleBooksRenderer) FilePrefix() string { return "google_books" }

func (*GoogleBooksRenderer) RenderHTML(res models.SearchResult, req models.SearchRequest, generatedAt time.Time) ([]byte, error) {
	return renderHTML("googlebooks.html.tmpl", res, req, generatedAt)
}
