package testsupport

import (
	"path/filepath"
	"testing"

	"showlink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTVDBKey sets the TheTVDB API key on the test config.
func WithTVDBKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TVDB.APIKey = key
	}
}

// WithTMDBKey sets the TMDB API key on the test config.
func WithTMDBKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TMDB.APIKey = key
	}
}

// WithTrakt enables Trakt with the provided client id.
func WithTrakt(clientID string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Trakt.Enabled = true
		cfg.Trakt.ClientID = clientID
	}
}
