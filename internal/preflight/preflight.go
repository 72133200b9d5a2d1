package preflight

import (
	"context"

	"showlink/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Provider checks only run when the provider is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Data directory (always checked, holds the mapping database)
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if cfg.TVDB.APIKey != "" {
		results = append(results, CheckTVDB(ctx, cfg.TVDB.BaseURL, cfg.TVDB.APIKey))
	}
	if cfg.TMDB.APIKey != "" {
		results = append(results, CheckTMDB(ctx, cfg.TMDB.BaseURL, cfg.TMDB.APIKey))
	}
	if cfg.TVmaze.Enabled {
		results = append(results, CheckTVmaze(ctx, cfg.TVmaze.BaseURL))
	}
	if cfg.Trakt.Enabled {
		results = append(results, CheckTrakt(ctx, cfg.Trakt.BaseURL, cfg.Trakt.ClientID))
	}

	return results
}
