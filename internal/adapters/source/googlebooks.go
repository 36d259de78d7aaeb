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

const googleBooksMaxLimit = 40

type GoogleBooksAdapter struct {
	baseURL  string
	apiKey   string
	cooldown time.Duration
	client   *http.Client
}

func NewGoogleBooksAdapter(cfg *config.Config) *GoogleBooksAdapter {
	return &GoogleBooksAdapter{
		baseURL:  cfg.GoogleBooksBaseURL,
		apiKey:   cfg.GoogleAPIKey,
		cooldown: cfg.GoogleBooksCooldown,
		client: &http.Client{
			Transport: &util.DebugTransport{Enabled: strings.EqualFold(cfg.LogLevel, "debug")},
			Timeout:   cfg.HTTPTimeout,
		},
	}
}

type gbIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type gbVolumeInfo struct {
	Title               string         `json:"title"`
	Subtitle            string         `json:"subtitle"`
	Authors             []string       `json:"authors"`
	Publisher           string         `json:"publisher"`
	PublishedDate       string         `json:"publishedDate"`
	Description         string         `json:"description"`
	PageCount           int            `json:"pageCount"`
	Categories          []string       `json:"categories"`
	Language            string         `json:"language"`
	AverageRating       float64        `json:"averageRating"`
	RatingsCount        int            `json:"ratingsCount"`
	PreviewLink         string         `json:"previewLink"`
	InfoLink            string         `json:"infoLink"`
	IndustryIdentifiers []gbIdentifier `json:"industryIdentifiers"`
	ImageLinks          struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

type gbSaleInfo struct {
	Saleability string `json:"saleability"`
	RetailPrice *struct {
		Amount       *float64 `json:"amount"`
		CurrencyCode string   `json:"currencyCode"`
	} `json:"retailPrice"`
}

type gbVolume struct {
	ID         string       `json:"id"`
	VolumeInfo gbVolumeInfo `json:"volumeInfo"`
	SaleInfo   gbSaleInfo   `json:"saleInfo"`
}

type gbResponse struct {
	TotalItems int        `json:"totalItems"`
	Items      []gbVolume `json:"items"`
}

func (a *GoogleBooksAdapter) Search(ctx context.Context, req models.SearchRequest) (models.SearchResult, error) {
	// The language filter travels as langRestrict, not as a query clause.
	qreq := req
	qreq.Language = ""

	q := url.Values{}
	q.Set("q", qreq.Query())
	q.Set("maxResults", strconv.Itoa(clampLimit(req.Limit, googleBooksMaxLimit)))
	q.Set("printType", "books")
	if req.Language != "" {
		q.Set("langRestrict", req.Language)
	}
	if a.apiKey != "" {
		q.Set("key", a.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return models.SearchResult{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("googlebooks: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.SearchResult{}, fmt.Errorf("googlebooks: http %d: %s", resp.StatusCode, string(b))
	}

	var r gbResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.SearchResult{}, fmt.Errorf("googlebooks: decoding response: %w", err)
	}

	if a.cooldown > 0 {
		time.Sleep(a.cooldown)
	}

	// Items is omitted entirely on zero matches.
	books := make([]models.Book, 0, len(r.Items))
	for _, item := range r.Items {
		books = append(books, normalizeVolume(item))
	}
	return models.SearchResult{Books: books, Total: r.TotalItems}, nil
}

func normalizeVolume(item gbVolume) models.Book {
	info := item.VolumeInfo
	b := models.Book{
		Key:           item.ID,
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       orEmpty(info.Authors),
		Subjects:      orEmpty(info.Categories),
		Publishers:    []string{},
		ISBNs:         []string{},
		OtherIDs:      []string{},
		PublishedDate: info.PublishedDate,
		Language:      info.Language,
		Description:   info.Description,
		PreviewLink:   info.PreviewLink,
		InfoLink:      info.InfoLink,
		CoverURL:      info.ImageLinks.Thumbnail,
		Saleability:   item.SaleInfo.Saleability,
		Popularity:    googleBooksPopularity(info),
	}
	if b.Title == "" {
		b.Title = "Unknown"
	}
	if info.Publisher != "" {
		b.Publishers = append(b.Publishers, info.Publisher)
	}
	if info.PageCount > 0 {
		p := info.PageCount
		b.Pages = &p
	}
	if info.AverageRating > 0 {
		v := info.AverageRating
		b.Rating = &v
	}
	if info.RatingsCount > 0 {
		n := info.RatingsCount
		b.RatingCount = &n
	}

	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			b.ISBN13 = id.Identifier
		case "ISBN_10":
			b.ISBN10 = id.Identifier
		default:
			b.OtherIDs = append(b.OtherIDs, id.Identifier)
		}
	}
	for _, isbn := range []string{b.ISBN10, b.ISBN13} {
		if isbn != "" {
			b.ISBNs = append(b.ISBNs, isbn)
		}
	}

	if rp := item.SaleInfo.RetailPrice; rp != nil && rp.Amount != nil {
		amount := *rp.Amount
		b.Price = &amount
	}

	b.DetailURL = info.InfoLink
	if b.DetailURL == "" {
		b.DetailURL = info.PreviewLink
	}
	return b
}

func googleBooksPopularity(info gbVolumeInfo) float64 {
	score := 0.0
	if info.AverageRating > 0 {
		score += math.Min(info.AverageRating, 5) / 5.0 * 50
	}
	if info.RatingsCount > 0 {
		score += math.Min(float64(info.RatingsCount)/10, 30)
	}
	if info.PageCount > 0 {
		score += math.Min(float64(info.PageCount)/100, 10)
	}
	if len(info.Categories) > 0 {
		score += 10
	}
	return round2(score)
}
