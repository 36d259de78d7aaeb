package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string
	OutputDir string

	OpenLibraryBaseURL  string
	CoversBaseURL       string
	CoverSize           string
	OpenLibraryCooldown time.Duration

	GoogleBooksBaseURL  string
	GoogleAPIKey        string
	GoogleBooksCooldown time.Duration

	HTTPTimeout time.Duration
}

// Load builds the configuration from defaults and BR_-prefixed
// environment variables. A local .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BR")
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", ".")
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org/search.json")
	v.SetDefault("covers_base_url", "https://covers.openlibrary.org/b")
	v.SetDefault("cover_size", "M")
	v.SetDefault("openlibrary_cooldown", "500ms")
	v.SetDefault("googlebooks_base_url", "https://www.googleapis.com/books/v1/volumes")
	v.SetDefault("google_api_key", "")
	v.SetDefault("googlebooks_cooldown", "300ms")
	v.SetDefault("http_timeout", "30s")

	cfg := &Config{
		LogLevel:            v.GetString("log_level"),
		OutputDir:           v.GetString("output_dir"),
		OpenLibraryBaseURL:  v.GetString("openlibrary_base_url"),
		CoversBaseURL:       v.GetString("covers_base_url"),
		CoverSize:           v.GetString("cover_size"),
		OpenLibraryCooldown: v.GetDuration("openlibrary_cooldown"),
		GoogleBooksBaseURL:  v.GetString("googlebooks_base_url"),
		GoogleAPIKey:        v.GetString("google_api_key"),
		GoogleBooksCooldown: v.GetDuration("googlebooks_cooldown"),
		HTTPTimeout:         v.GetDuration("http_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("BR_OUTPUT_DIR must not be empty")
	}

	switch c.CoverSize {
	case "S", "M", "L":
	default:
		return fmt.Errorf("BR_COVER_SIZE must be one of S, M, L (got %q)", c.CoverSize)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("BR_HTTP_TIMEOUT must be positive")
	}

	if c.OpenLibraryCooldown < 0 || c.GoogleBooksCooldown < 0 {
		return fmt.Errorf("cooldown durations cannot be negative")
	}

	if c.OpenLibraryBaseURL == "" || c.GoogleBooksBaseURL == "" || c.CoversBaseURL == "" {
		return fmt.Errorf("provider base URLs must not be empty")
	}

	return nil
}
