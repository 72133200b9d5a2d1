package externals_test

import (
	"context"
	"errors"
	"testing"

	"showlink/internal/externals"
	"showlink/internal/indexers"
	"showlink/internal/library"
	"showlink/internal/services"
	"showlink/internal/testsupport"
)

func newChecker(t *testing.T, registry *indexers.Registry, store *library.Store) *externals.Checker {
	t.Helper()
	checker, err := externals.NewChecker(newResolver(t, registry), store)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	return checker
}

func TestCheckExistingEmptyLibrary(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	checker := newChecker(t, indexers.NewRegistry(nil), store)

	merged, err := checker.CheckExisting(context.Background(), indexers.TheTVDB, "100", nil)
	if err != nil {
		t.Fatalf("CheckExisting: %v", err)
	}
	if got := merged.Get(indexers.KeyTVDB); got != "100" {
		t.Errorf("merged[tvdb_id] = %q, want native id seeded", got)
	}
}

func TestCheckExistingNativeKeyConflict(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	existing := testsupport.AddShow(t, store, indexers.TMDB, "55", "Breaking Bad",
		indexers.Externals{indexers.KeyTVDB: "100"})

	checker := newChecker(t, indexers.NewRegistry(nil), store)
	_, err := checker.CheckExisting(context.Background(), indexers.TheTVDB, "100", nil)
	if !errors.Is(err, externals.ErrShowExists) {
		t.Fatalf("CheckExisting err = %v, want ErrShowExists", err)
	}

	var conflict *externals.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("CheckExisting err = %T, want *ConflictError", err)
	}
	if conflict.Existing.ID != existing.ID {
		t.Errorf("conflict show id = %d, want %d", conflict.Existing.ID, existing.ID)
	}
	if conflict.Key != indexers.KeyTVDB || conflict.Value != "100" {
		t.Errorf("conflict on %s=%s, want tvdb_id=100", conflict.Key, conflict.Value)
	}
	if conflict.Candidate != indexers.TheTVDB {
		t.Errorf("conflict candidate = %s, want thetvdb", conflict.Candidate.Slug())
	}
}

func TestCheckExistingAggregatedConflict(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.AddShow(t, store, indexers.TVmaze, "7", "Breaking Bad",
		indexers.Externals{indexers.KeyTMDB: "1396"})

	registry := indexers.NewRegistry(nil)
	registry.Register(indexers.TMDB, searcherFunc(func(context.Context, indexers.Externals) (indexers.Externals, error) {
		return indexers.Externals{indexers.KeyTMDB: "1396"}, nil
	}))

	checker := newChecker(t, registry, store)
	_, err := checker.CheckExisting(context.Background(), indexers.TheTVDB, "100",
		indexers.Externals{indexers.KeyIMDB: "tt0903747"})

	var conflict *externals.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("CheckExisting err = %v, want *ConflictError", err)
	}
	if conflict.Key != indexers.KeyTMDB || conflict.Value != "1396" {
		t.Errorf("conflict on %s=%s, want tmdb_id=1396", conflict.Key, conflict.Value)
	}
}

func TestCheckExistingIgnoresSameIndexerExternals(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.AddShow(t, store, indexers.TheTVDB, "200", "Other Show",
		indexers.Externals{indexers.KeyIMDB: "tt0903747"})

	checker := newChecker(t, indexers.NewRegistry(nil), store)
	_, err := checker.CheckExisting(context.Background(), indexers.TheTVDB, "100",
		indexers.Externals{indexers.KeyIMDB: "tt0903747"})
	if err != nil {
		t.Fatalf("CheckExisting: %v, want nil for same-indexer external overlap", err)
	}
}

func TestCheckExistingProbesWithNativeID(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.AddShow(t, store, indexers.TVmaze, "6771", "Preacher",
		indexers.Externals{indexers.KeyTVmaze: "6771"})

	// The searcher only answers when the origin's own ID reaches it, so a
	// bare (indexer, series id) check must still find the duplicate.
	registry := indexers.NewRegistry(nil)
	registry.Register(indexers.TVmaze, searcherFunc(func(_ context.Context, known indexers.Externals) (indexers.Externals, error) {
		if known.Get(indexers.KeyTVDB) != "301824" {
			return nil, nil
		}
		return indexers.Externals{indexers.KeyTVmaze: "6771", indexers.KeyIMDB: "tt4158110"}, nil
	}))

	checker := newChecker(t, registry, store)
	_, err := checker.CheckExisting(context.Background(), indexers.TheTVDB, "301824", nil)

	var conflict *externals.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("CheckExisting err = %v, want *ConflictError from native-seeded sweep", err)
	}
	if conflict.Key != indexers.KeyTVmaze || conflict.Value != "6771" {
		t.Errorf("conflict on %s=%s, want tvmaze_id=6771", conflict.Key, conflict.Value)
	}
}

func TestCheckExistingValidation(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	checker := newChecker(t, indexers.NewRegistry(nil), store)

	if _, err := checker.CheckExisting(context.Background(), indexers.Indexer(99), "100", nil); !errors.Is(err, services.ErrValidation) {
		t.Errorf("unknown indexer err = %v, want validation error", err)
	}
	if _, err := checker.CheckExisting(context.Background(), indexers.TheTVDB, "", nil); !errors.Is(err, services.ErrValidation) {
		t.Errorf("empty series id err = %v, want validation error", err)
	}
}

func TestShowInLibraryThroughMapping(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	want := testsupport.AddShow(t, store, indexers.TMDB, "1396", "Breaking Bad", nil)
	if err := store.SaveExternals(ctx, indexers.TheTVDB, "100", indexers.Externals{indexers.KeyTMDB: "1396"}); err != nil {
		t.Fatalf("SaveExternals: %v", err)
	}

	checker := newChecker(t, indexers.NewRegistry(nil), store)
	got, err := checker.ShowInLibrary(ctx, indexers.TheTVDB, "100")
	if err != nil {
		t.Fatalf("ShowInLibrary: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("ShowInLibrary = %+v, want show %d", got, want.ID)
	}
}

func TestShowInLibraryReverseMapping(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	want := testsupport.AddShow(t, store, indexers.TheTVDB, "100", "Breaking Bad", nil)
	if err := store.SaveExternals(ctx, indexers.TheTVDB, "100", indexers.Externals{indexers.KeyTMDB: "1396"}); err != nil {
		t.Fatalf("SaveExternals: %v", err)
	}

	checker := newChecker(t, indexers.NewRegistry(nil), store)
	got, err := checker.ShowInLibrary(ctx, indexers.TMDB, "1396")
	if err != nil {
		t.Fatalf("ShowInLibrary: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("ShowInLibrary = %+v, want show %d", got, want.ID)
	}
}

func TestShowInLibraryNoMapping(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.AddShow(t, store, indexers.TMDB, "1396", "Breaking Bad", nil)

	checker := newChecker(t, indexers.NewRegistry(nil), store)
	got, err := checker.ShowInLibrary(context.Background(), indexers.TheTVDB, "100")
	if err != nil {
		t.Fatalf("ShowInLibrary: %v", err)
	}
	if got != nil {
		t.Fatalf("ShowInLibrary = %+v, want nil", got)
	}
}
