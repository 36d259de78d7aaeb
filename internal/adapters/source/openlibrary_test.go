package source

import (
	"bookreport/internal/config"
	"bookreport/internal/core/domain/models"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		LogLevel:           "info",
		OpenLibraryBaseURL: baseURL,
		CoversBaseURL:      "https://covers.example/b",
		CoverSize:          "M",
		GoogleBooksBaseURL: baseURL,
		HTTPTimeout:        5 * time.Second,
	}
}

func TestOpenLibraryAdapter_Search_Success(t *testing.T) {
	var gotQuery, gotLimit, gotFields string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotFields = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"numFound": 123,
			"docs": [{
				"key": "/works/OL1W",
				"title": "The Hobbit",
				"author_name": ["J.R.R. Tolkien"],
				"cover_i": 42,
				"first_publish_year": 1937,
				"publisher": ["Allen & Unwin", "Houghton", "Ballantine"],
				"subject": ["Fantasy", "Dragons"],
				"number_of_pages_median": 310,
				"ratings_average": 4.2,
				"ratings_count": 250,
				"edition_count": 3,
				"has_fulltext": true
			}]
		}`)
	}))
	defer server.Close()

	adapter := NewOpenLibraryAdapter(testConfig(server.URL))
	res, err := adapter.Search(context.Background(), models.SearchRequest{Title: "Hobbit", Limit: 5})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery != `title:"Hobbit"` {
		t.Errorf("expected composed query, got %q", gotQuery)
	}
	if gotLimit != "5" {
		t.Errorf("expected limit 5, got %q", gotLimit)
	}
	if gotFields == "" {
		t.Error("expected fields allowlist to be sent")
	}

	if res.Total != 123 {
		t.Errorf("expected total 123, got %d", res.Total)
	}
	if len(res.Books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(res.Books))
	}

	b := res.Books[0]
	if b.Title != "The Hobbit" {
		t.Errorf("unexpected title %q", b.Title)
	}
	if b.DetailURL != "https://openlibrary.org/works/OL1W" {
		t.Errorf("unexpected detail URL %q", b.DetailURL)
	}
	if b.CoverURL != "https://covers.example/b/id/42-M.jpg" {
		t.Errorf("unexpected cover URL %q", b.CoverURL)
	}
	if b.FirstYear == nil || *b.FirstYear != 1937 {
		t.Errorf("unexpected first year %v", b.FirstYear)
	}
	if b.Availability != "Full Text Available" {
		t.Errorf("unexpected availability %q", b.Availability)
	}
	if b.Level != "Beginner" {
		t.Errorf("expected 310 pages to read as Beginner, got %q", b.Level)
	}
}

func TestOpenLibraryAdapter_Search_LimitClamped(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, `{"numFound": 0, "docs": []}`)
	}))
	defer server.Close()

	adapter := NewOpenLibraryAdapter(testConfig(server.URL))
	if _, err := adapter.Search(context.Background(), models.SearchRequest{Text: "x", Limit: 500}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotLimit != "100" {
		t.Errorf("expected limit clamped to 100, got %q", gotLimit)
	}

	if _, err := adapter.Search(context.Background(), models.SearchRequest{Text: "x"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotLimit != "10" {
		t.Errorf("expected default limit 10, got %q", gotLimit)
	}
}

func TestOpenLibraryAdapter_Search_ZeroResultsIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"numFound": 0, "docs": []}`)
	}))
	defer server.Close()

	adapter := NewOpenLibraryAdapter(testConfig(server.URL))
	res, err := adapter.Search(context.Background(), models.SearchRequest{Text: "nope"})
	if err != nil {
		t.Fatalf("expected nil error for zero matches, got %v", err)
	}
	if res.Total != 0 || len(res.Books) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestOpenLibraryAdapter_Search_ServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewOpenLibraryAdapter(testConfig(server.URL))
	if _, err := adapter.Search(context.Background(), models.SearchRequest{Text: "x"}); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestOpenLibraryAdapter_Search_MalformedBodySurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	adapter := NewOpenLibraryAdapter(testConfig(server.URL))
	if _, err := adapter.Search(context.Background(), models.SearchRequest{Text: "x"}); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestOpenLibraryAdapter_Search_Cooldown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"numFound": 0, "docs": []}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.OpenLibraryCooldown = 20 * time.Millisecond
	adapter := NewOpenLibraryAdapter(cfg)

	start := time.Now()
	if _, err := adapter.Search(context.Background(), models.SearchRequest{Text: "x"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected post-request cooldown, call returned in %v", elapsed)
	}
}

func TestOpenLibraryPopularity_WorkedExample(t *testing.T) {
	// rating 4.0/5 -> 16, count 200/100 capped at 20 -> 20, no reading
	// counters, 3 editions*2 -> 6, fulltext -> 5; total 47.
	d := olDoc{
		Title:          "T",
		AuthorName:     []string{"A"},
		RatingsAverage: 4.0,
		RatingsCount:   200,
		EditionCount:   3,
		HasFulltext:    true,
	}
	if got := openLibraryPopularity(d); got != 47.0 {
		t.Errorf("expected 47.0, got %v", got)
	}
	if got := availability(d); got != "Full Text Available" {
		t.Errorf("expected Full Text Available, got %q", got)
	}
	if got := readingLevel(d.NumberOfPagesMedian); got != "Beginner" {
		t.Errorf("expected Beginner for absent pages, got %q", got)
	}
}

func TestOpenLibraryPopularity_RatingTermsNeedBothSignals(t *testing.T) {
	withRatingOnly := olDoc{RatingsAverage: 5.0}
	if got := openLibraryPopularity(withRatingOnly); got != 0 {
		t.Errorf("rating without count should not score, got %v", got)
	}
	withCountOnly := olDoc{RatingsCount: 1000}
	if got := openLibraryPopularity(withCountOnly); got != 0 {
		t.Errorf("count without rating should not score, got %v", got)
	}
}

func TestOpenLibraryPopularity_Caps(t *testing.T) {
	d := olDoc{
		RatingsAverage:        5,
		RatingsCount:          1000000,
		WantToReadCount:       100000,
		CurrentlyReadingCount: 100000,
		AlreadyReadCount:      100000,
		EditionCount:          500,
		HasFulltext:           true,
		LendingEditionS:       "OL123M",
	}
	// 20 + 20 + 30 + 20 + 5 + 5
	if got := openLibraryPopularity(d); got != 100.0 {
		t.Errorf("expected fully capped score 100, got %v", got)
	}
}

func TestAvailability_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		doc  olDoc
		want string
	}{
		{"fulltext wins over lending", olDoc{HasFulltext: true, LendingEditionS: "OL1M"}, "Full Text Available"},
		{"lending", olDoc{LendingEditionS: "OL1M", PublicScanB: true}, "Available for Lending"},
		{"public scan", olDoc{PublicScanB: true, IA: []string{"x"}}, "Public Scan Available"},
		{"archive", olDoc{IA: []string{"x"}}, "Archive.org Available"},
		{"metadata only", olDoc{}, "Metadata Only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := availability(tt.doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadingLevel_Boundaries(t *testing.T) {
	tests := []struct {
		pages int
		want  string
	}{
		{0, "Beginner"},
		{400, "Beginner"},
		{401, "Intermediate"},
		{800, "Intermediate"},
		{801, "Advanced"},
	}
	for _, tt := range tests {
		if got := readingLevel(tt.pages); got != tt.want {
			t.Errorf("readingLevel(%d) = %q, want %q", tt.pages, got, tt.want)
		}
	}
}

func TestOpenLibraryNormalize_Defaults(t *testing.T) {
	adapter := NewOpenLibraryAdapter(testConfig("http://unused"))
	b := adapter.normalize(olDoc{Key: "/works/OL2W"})

	if b.Title != "Unknown" {
		t.Errorf("absent title should default to Unknown, got %q", b.Title)
	}
	if b.Authors == nil || b.Publishers == nil || b.Subjects == nil || b.ISBNs == nil {
		t.Error("list fields must never be nil")
	}
	if b.FirstYear != nil || b.Pages != nil || b.Rating != nil || b.RatingCount != nil {
		t.Error("absent scalars must stay nil")
	}
	if b.CoverURL != "" {
		t.Errorf("no cover id should mean no cover URL, got %q", b.CoverURL)
	}
	if b.Popularity < 0 {
		t.Errorf("popularity must be non-negative, got %v", b.Popularity)
	}
}
