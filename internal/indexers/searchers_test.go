package indexers

import (
	"context"
	"errors"
	"testing"

	"showlink/internal/indexers/tmdb"
	"showlink/internal/indexers/tvdb"
	"showlink/internal/indexers/tvmaze"
)

type fakeTVDB struct {
	series []tvdb.Series
	err    error
	calls  int
}

func (f *fakeTVDB) SearchByIMDB(ctx context.Context, imdbID string) ([]tvdb.Series, error) {
	f.calls++
	return f.series, f.err
}

func (f *fakeTVDB) SearchByZap2It(ctx context.Context, zap2itID string) ([]tvdb.Series, error) {
	return nil, errors.New("not used")
}

func TestTVDBSearcherResolvesFromIMDB(t *testing.T) {
	fake := &fakeTVDB{series: []tvdb.Series{{ID: 121361}}}
	searcher := &tvdbSearcher{client: fake}

	found, err := searcher.GetIDByExternal(context.Background(), Externals{KeyIMDB: "tt0944947"})
	if err != nil {
		t.Fatalf("GetIDByExternal returned error: %v", err)
	}
	if found.Get(KeyTVDB) != "121361" {
		t.Fatalf("unexpected result: %v", found)
	}
}

func TestTVDBSearcherSkipsWithoutIMDB(t *testing.T) {
	fake := &fakeTVDB{}
	searcher := &tvdbSearcher{client: fake}

	found, err := searcher.GetIDByExternal(context.Background(), Externals{KeyTVmaze: "82"})
	if err != nil {
		t.Fatalf("GetIDByExternal returned error: %v", err)
	}
	if len(found) != 0 || fake.calls != 0 {
		t.Fatalf("expected no lookup, got %v after %d calls", found, fake.calls)
	}
}

type fakeTMDB struct {
	responses map[string]*tmdb.FindResponse
	err       error
}

func (f *fakeTMDB) FindByExternalID(ctx context.Context, externalID, source string) (*tmdb.FindResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[source], nil
}

func TestTMDBSearcherPrefersIMDBThenTVDB(t *testing.T) {
	fake := &fakeTMDB{responses: map[string]*tmdb.FindResponse{
		tmdb.SourceTVDB: {TVResults: []tmdb.TVResult{{ID: 1399}}},
	}}
	searcher := &tmdbSearcher{client: fake}

	// No IMDb match configured, so the TVDB attempt must fill the gap.
	found, err := searcher.GetIDByExternal(context.Background(), Externals{
		KeyIMDB: "tt0944947",
		KeyTVDB: "121361",
	})
	if err != nil {
		t.Fatalf("GetIDByExternal returned error: %v", err)
	}
	if found.Get(KeyTMDB) != "1399" {
		t.Fatalf("unexpected result: %v", found)
	}
}

func TestTMDBSearcherPropagatesErrors(t *testing.T) {
	searcher := &tmdbSearcher{client: &fakeTMDB{err: errors.New("boom")}}
	if _, err := searcher.GetIDByExternal(context.Background(), Externals{KeyIMDB: "tt1"}); err == nil {
		t.Fatal("expected error")
	}
}

type fakeTVmaze struct {
	show *tvmaze.Show
	err  error
}

func (f *fakeTVmaze) LookupShow(ctx context.Context, lookup tvmaze.Lookup) (*tvmaze.Show, error) {
	return f.show, f.err
}

func TestTVmazeSearcherFillsSeveralKeys(t *testing.T) {
	fake := &fakeTVmaze{show: &tvmaze.Show{
		ID:        82,
		Externals: tvmaze.ShowExternals{TheTVDB: 121361, IMDB: "tt0944947"},
	}}
	searcher := &tvmazeSearcher{client: fake}

	found, err := searcher.GetIDByExternal(context.Background(), Externals{KeyTVDB: "121361"})
	if err != nil {
		t.Fatalf("GetIDByExternal returned error: %v", err)
	}
	want := Externals{KeyTVmaze: "82", KeyTVDB: "121361", KeyIMDB: "tt0944947"}
	for key, value := range want {
		if found.Get(key) != value {
			t.Fatalf("missing %s=%s in %v", key, value, found)
		}
	}
}

func TestTVmazeSearcherNoMatchIsEmpty(t *testing.T) {
	searcher := &tvmazeSearcher{client: &fakeTVmaze{}}
	found, err := searcher.GetIDByExternal(context.Background(), Externals{KeyIMDB: "tt1"})
	if err != nil {
		t.Fatalf("GetIDByExternal returned error: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected empty result, got %v", found)
	}
}
