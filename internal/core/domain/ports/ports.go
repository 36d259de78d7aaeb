package ports

import (
	"bookreport/internal/core/domain/models"
	"context"
	"time"
)

type BookSource interface {
	Search(ctx context.Context, req models.SearchRequest) (models.SearchResult, error)
}

type ReportRenderer interface {
	// FilePrefix names the timestamped output files for this provider.
	FilePrefix() string
	RenderHTML(res models.SearchResult, req models.SearchRequest, generatedAt time.Time) ([]byte, error)
	RenderCSV(res models.SearchResult) ([]byte, error)
}
