package source

import (
	"bookreport/internal/adapters/util"
	"bookreport/internal/config"
	"bookreport/internal/core/domain/models"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	userAgent = "bookreport/1.0"

	openLibraryMaxLimit = 100
	defaultLimit        = 10

	openLibraryDetailHost = "https://openlibrary.org"
)

// openLibraryFields is the fixed allowlist of doc fields requested from
// the search endpoint.
var openLibraryFields = []string{
	"key", "title", "subtitle", "author_name", "author_key",
	"cover_i", "first_publish_year", "publish_year", "publisher",
	"isbn", "isbn13", "subject", "language", "number_of_pages_median",
	"ratings_average", "ratings_count", "want_to_read_count",
	"currently_reading_count", "already_read_count", "readinglog_count",
	"edition_count", "lc_classifications", "dewey_decimal_class",
	"ia", "has_fulltext", "public_scan_b", "lending_edition_s",
}

type OpenLibraryAdapter struct {
	baseURL   string
	coversURL string
	coverSize string
	cooldown  time.Duration
	client    *http.Client
}

func NewOpenLibraryAdapter(cfg *config.Config) *OpenLibraryAdapter {
	return &OpenLibraryAdapter{
		baseURL:   cfg.OpenLibraryBaseURL,
		coversURL: cfg.CoversBaseURL,
		coverSize: cfg.CoverSize,
		cooldown:  cfg.OpenLibraryCooldown,
		client: &http.Client{
			Transport: &util.DebugTransport{Enabled: strings.EqualFold(cfg.LogLevel, "debug")},
			Timeout:   cfg.HTTPTimeout,
		},
	}
}

// olDoc mirrors one raw record from search.json. Zero values stand in for
// absent fields, matching how the provider omits them.
type olDoc struct {
	Key                   string   `json:"key"`
	Title                 string   `json:"title"`
	Subtitle              string   `json:"subtitle"`
	AuthorName            []string `json:"author_name"`
	CoverI                int      `json:"cover_i"`
	FirstPublishYear      int      `json:"first_publish_year"`
	Publisher             []string `json:"publisher"`
	ISBN                  []string `json:"isbn"`
	Subject               []string `json:"subject"`
	NumberOfPagesMedian   int      `json:"number_of_pages_median"`
	RatingsAverage        float64  `json:"ratings_average"`
	RatingsCount          int      `json:"ratings_count"`
	WantToReadCount       int      `json:"want_to_read_count"`
	CurrentlyReadingCount int      `json:"currently_reading_count"`
	AlreadyReadCount      int      `json:"already_read_count"`
	EditionCount          int      `json:"edition_count"`
	IA                    []string `json:"ia"`
	HasFulltext           bool     `json:"has_fulltext"`
	PublicScanB           bool     `json:"public_scan_b"`
	LendingEditionS       string   `json:"lending_edition_s"`
}

type olResponse struct {
	NumFound int     `json:"numFound"`
	Docs     []olDoc `json:"docs"`
}

func (a *OpenLibraryAdapter) Search(ctx context.Context, req models.SearchRequest) (models.SearchResult, error) {
	q := url.Values{}
	q.Set("q", req.Query())
	q.Set("limit", strconv.Itoa(clampLimit(req.Limit, openLibraryMaxLimit)))
	q.Set("fields", strings.Join(openLibraryFields, ","))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return models.SearchResult{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("openlibrary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.SearchResult{}, fmt.Errorf("openlibrary: http %d: %s", resp.StatusCode, string(b))
	}

	var r olResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.SearchResult{}, fmt.Errorf("openlibrary: decoding response: %w", err)
	}

	// Cooldown between successive independent calls, not a retry.
	if a.cooldown > 0 {
		time.Sleep(a.cooldown)
	}

	books := make([]models.Book, 0, len(r.Docs))
	for _, d := range r.Docs {
		books = append(books, a.normalize(d))
	}
	return models.SearchResult{Books: books, Total: r.NumFound}, nil
}

func (a *OpenLibraryAdapter) normalize(d olDoc) models.Book {
	b := models.Book{
		Key:          d.Key,
		DetailURL:    openLibraryDetailHost + d.Key,
		Title:        d.Title,
		Subtitle:     d.Subtitle,
		Authors:      orEmpty(d.AuthorName),
		Publishers:   orEmpty(d.Publisher),
		Subjects:     orEmpty(d.Subject),
		ISBNs:        orEmpty(d.ISBN),
		OtherIDs:     []string{},
		WantToRead:   d.WantToReadCount,
		ReadingNow:   d.CurrentlyReadingCount,
		HaveRead:     d.AlreadyReadCount,
		Editions:     d.EditionCount,
		Availability: availability(d),
		Level:        readingLevel(d.NumberOfPagesMedian),
		Popularity:   openLibraryPopularity(d),
	}
	if b.Title == "" {
		b.Title = "Unknown"
	}
	if d.FirstPublishYear != 0 {
		y := d.FirstPublishYear
		b.FirstYear = &y
	}
	if d.NumberOfPagesMedian > 0 {
		p := d.NumberOfPagesMedian
		b.Pages = &p
	}
	if d.RatingsAverage > 0 {
		v := d.RatingsAverage
		b.Rating = &v
	}
	if d.RatingsCount > 0 {
		n := d.RatingsCount
		b.RatingCount = &n
	}
	if d.CoverI > 0 {
		b.CoverURL = fmt.Sprintf("%s/id/%d-%s.jpg", a.coversURL, d.CoverI, a.coverSize)
	}
	return b
}

// availability classifies access to a work; the first matching condition
// wins, evaluated in this exact order.
func availability(d olDoc) string {
	switch {
	case d.HasFulltext:
		return "Full Text Available"
	case d.LendingEditionS != "":
		return "Available for Lending"
	case d.PublicScanB:
		return "Public Scan Available"
	case len(d.IA) > 0:
		return "Archive.org Available"
	default:
		return "Metadata Only"
	}
}

// readingLevel buckets by median page count. Strict comparisons: 400 and
// 800 land in the lower bucket, and an unknown page count reads as 0.
func readingLevel(pages int) string {
	switch {
	case pages > 800:
		return "Advanced"
	case pages > 400:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

func openLibraryPopularity(d olDoc) float64 {
	score := 0.0
	if d.RatingsAverage > 0 && d.RatingsCount > 0 {
		score += d.RatingsAverage / 5.0 * 20
		score += math.Min(float64(d.RatingsCount)/100, 20)
	}

	reading := d.WantToReadCount + d.CurrentlyReadingCount + d.AlreadyReadCount
	score += math.Min(float64(reading)/50, 30)
	score += math.Min(float64(d.EditionCount)*2, 20)

	if d.HasFulltext {
		score += 5
	}
	if d.LendingEditionS != "" {
		score += 5
	}
	return round2(score)
}

func clampLimit(n, max int) int {
	if n <= 0 {
		return defaultLimit
	}
	if n > max {
		return max
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orEmpty(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
