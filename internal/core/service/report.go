package service

import (
	"bookreport/internal/config"
	"bookreport/internal/core/domain/models"
	"bookreport/internal/core/domain/ports"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ReportService runs one search and writes the HTML and CSV reports for
// it. Each run builds its own in-memory result list; nothing is shared
// between invocations.
type ReportService struct {
	cfg      *config.Config
	src      ports.BookSource
	renderer ports.ReportRenderer
	now      func() time.Time
}

func NewReportService(cfg *config.Config, src ports.BookSource, renderer ports.ReportRenderer) *ReportService {
	return &ReportService{
		cfg:      cfg,
		src:      src,
		renderer: renderer,
		now:      time.Now,
	}
}

// ReportFiles holds the paths written by a successful run.
type ReportFiles struct {
	HTMLPath string
	CSVPath  string
}

// Run searches, renders, and writes both reports. A failed fetch returns
// an error; zero matches returns a nil ReportFiles and writes nothing.
func (s *ReportService) Run(ctx context.Context, req models.SearchRequest) (models.SearchResult, *ReportFiles, error) {
	res, err := s.src.Search(ctx, req)
	if err != nil {
		return models.SearchResult{}, nil, err
	}

	if len(res.Books) == 0 {
		log.Printf("No books found for query %q", req.Query())
		return res, nil, nil
	}

	generatedAt := s.now()
	stamp := generatedAt.Format("20060102_150405")

	htmlBytes, err := s.renderer.RenderHTML(res, req, generatedAt)
	if err != nil {
		return res, nil, fmt.Errorf("rendering HTML: %w", err)
	}
	csvBytes, err := s.renderer.RenderCSV(res)
	if err != nil {
		return res, nil, fmt.Errorf("rendering CSV: %w", err)
	}

	files := &ReportFiles{
		HTMLPath: filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_%s.html", s.renderer.FilePrefix(), stamp)),
		CSVPath:  filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_%s.csv", s.renderer.FilePrefix(), stamp)),
	}

	// Each file is one complete buffer; both writes are independent.
	if err := os.WriteFile(files.HTMLPath, htmlBytes, 0o644); err != nil {
		return res, nil, fmt.Errorf("writing HTML report: %w", err)
	}
	if err := os.WriteFile(files.CSVPath, csvBytes, 0o644); err != nil {
		return res, nil, fmt.Errorf("writing CSV report: %w", err)
	}

	return res, files, nil
}
