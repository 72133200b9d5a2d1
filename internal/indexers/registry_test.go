package indexers_test

import (
	"context"
	"errors"
	"testing"

	"showlink/internal/config"
	"showlink/internal/indexers"
	"showlink/internal/services"
)

type staticSearcher struct {
	result indexers.Externals
}

func (s *staticSearcher) GetIDByExternal(ctx context.Context, externals indexers.Externals) (indexers.Externals, error) {
	return s.result, nil
}

func TestRegistryBuildsConfiguredSearchers(t *testing.T) {
	cfg := config.Default()
	cfg.TVDB.APIKey = "k1"
	cfg.TMDB.APIKey = "k2"

	registry := indexers.NewRegistry(&cfg)
	for _, ix := range []indexers.Indexer{indexers.TheTVDB, indexers.TMDB, indexers.TVmaze} {
		if _, err := registry.SearcherFor(ix); err != nil {
			t.Fatalf("expected searcher for %v: %v", ix, err)
		}
	}
}

func TestRegistryReportsMissingCredentialsAsUnavailable(t *testing.T) {
	cfg := config.Default()
	cfg.TVmaze.Enabled = false

	registry := indexers.NewRegistry(&cfg)
	for _, ix := range []indexers.Indexer{indexers.TheTVDB, indexers.TMDB, indexers.TVmaze} {
		_, err := registry.SearcherFor(ix)
		if !errors.Is(err, services.ErrUnavailable) {
			t.Fatalf("expected unavailable for %v, got %v", ix, err)
		}
	}
}

func TestRegistryIMDBAlwaysUnavailable(t *testing.T) {
	cfg := config.Default()
	cfg.TVDB.APIKey = "k1"
	cfg.TMDB.APIKey = "k2"

	registry := indexers.NewRegistry(&cfg)
	if _, err := registry.SearcherFor(indexers.IMDB); !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable for imdb, got %v", err)
	}
}

func TestRegistryRejectsUnknownIndexer(t *testing.T) {
	registry := indexers.NewRegistry(nil)
	if _, err := registry.SearcherFor(indexers.Indexer(99)); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterInstallsFake(t *testing.T) {
	registry := indexers.NewRegistry(nil)
	registry.Register(indexers.TVmaze, &staticSearcher{result: indexers.Externals{indexers.KeyTVmaze: "82"}})

	searcher, err := registry.SearcherFor(indexers.TVmaze)
	if err != nil {
		t.Fatalf("SearcherFor returned error: %v", err)
	}
	found, err := searcher.GetIDByExternal(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetIDByExternal returned error: %v", err)
	}
	if found.Get(indexers.KeyTVmaze) != "82" {
		t.Fatalf("unexpected result: %v", found)
	}
}
