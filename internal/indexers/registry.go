package indexers

import (
	"net/http"
	"time"

	"showlink/internal/config"
	"showlink/internal/indexers/tmdb"
	"showlink/internal/indexers/tvdb"
	"showlink/internal/indexers/tvmaze"
	"showlink/internal/services"
)

// Registry hands out reverse-lookup searchers per indexer, built once from
// configuration. Indexers without credentials or without an API are simply
// absent; SearcherFor reports those as unavailable so aggregation sweeps can
// skip them.
type Registry struct {
	searchers map[Indexer]ExternalSearcher
}

// NewRegistry constructs searchers for every indexer the config enables.
func NewRegistry(cfg *config.Config) *Registry {
	registry := &Registry{searchers: make(map[Indexer]ExternalSearcher)}
	if cfg == nil {
		return registry
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second}

	if client, err := tvdb.New(cfg.TVDB.APIKey, cfg.TVDB.BaseURL, tvdb.WithHTTPClient(httpClient)); err == nil {
		registry.searchers[TheTVDB] = &tvdbSearcher{client: client}
	}
	if client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithHTTPClient(httpClient)); err == nil {
		registry.searchers[TMDB] = &tmdbSearcher{client: client}
	}
	if cfg.TVmaze.Enabled {
		if client, err := tvmaze.New(cfg.TVmaze.BaseURL, tvmaze.WithHTTPClient(httpClient)); err == nil {
			registry.searchers[TVmaze] = &tvmazeSearcher{client: client}
		}
	}

	return registry
}

// Register installs a searcher for an indexer, replacing any existing one.
// Primarily used by tests to install fakes.
func (r *Registry) Register(ix Indexer, searcher ExternalSearcher) {
	if searcher == nil {
		delete(r.searchers, ix)
		return
	}
	r.searchers[ix] = searcher
}

// SearcherFor returns the reverse-lookup searcher for an indexer.
func (r *Registry) SearcherFor(ix Indexer) (ExternalSearcher, error) {
	if !Known(ix) {
		return nil, services.Wrap(services.ErrValidation, "indexers", "searcher", "unknown indexer "+ix.Name(), nil)
	}
	searcher, ok := r.searchers[ix]
	if !ok {
		return nil, services.Wrap(services.ErrUnavailable, "indexers", "searcher", ix.Name()+" is not configured", nil)
	}
	return searcher, nil
}
