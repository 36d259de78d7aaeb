package service

import (
	"bookreport/internal/adapters/report"
	"bookreport/internal/adapters/source"
	"bookreport/internal/config"
	"bookreport/internal/core/domain/ports"
	"fmt"
)

const (
	ProviderOpenLibrary = "openlibrary"
	ProviderGoogleBooks = "googlebooks"
)

// CreateProvider wires the source adapter and report renderer for the
// named provider.
func CreateProvider(cfg *config.Config, name string) (ports.BookSource, ports.ReportRenderer, error) {
	switch name {
	case ProviderOpenLibrary:
		return source.NewOpenLibraryAdapter(cfg), report.NewOpenLibraryRenderer(), nil
	case ProviderGoogleBooks:
		return source.NewGoogleBooksAdapter(cfg), report.NewGoogleBooksRenderer(), nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", name)
	}
}
