package testsupport

import (
	"context"
	"testing"

	"showlink/internal/config"
	"showlink/internal/indexers"
	"showlink/internal/library"
	"showlink/internal/logging"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddShow inserts a show for tests using the provided store.
func AddShow(t testing.TB, store *library.Store, ix indexers.Indexer, seriesID, title string, externals indexers.Externals) *library.Show {
	t.Helper()

	show, err := store.AddShow(context.Background(), &library.Show{
		Indexer:   ix,
		SeriesID:  seriesID,
		Title:     title,
		Externals: externals,
	})
	if err != nil {
		t.Fatalf("store.AddShow: %v", err)
	}
	return show
}
