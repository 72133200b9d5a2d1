package indexers_test

import (
	"reflect"
	"testing"

	"showlink/internal/indexers"
)

func TestCloneDropsBlankEntries(t *testing.T) {
	src := indexers.Externals{
		"tvdb_id": "121361",
		"imdb_id": "  ",
		"":        "1",
		"tmdb_id": "1399",
	}
	got := src.Clone()
	want := indexers.Externals{"tvdb_id": "121361", "tmdb_id": "1399"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Clone = %v, want %v", got, want)
	}
}

func TestUpdateLaterSourceWins(t *testing.T) {
	base := indexers.Externals{"tvdb_id": "1", "imdb_id": "tt1"}
	base.Update(indexers.Externals{"tvdb_id": "2", "tvmaze_id": "3", "tmdb_id": ""})
	want := indexers.Externals{"tvdb_id": "2", "imdb_id": "tt1", "tvmaze_id": "3"}
	if !reflect.DeepEqual(base, want) {
		t.Fatalf("Update result = %v, want %v", base, want)
	}
}

func TestWithoutRemovesKey(t *testing.T) {
	src := indexers.Externals{"tvdb_id": "1", "imdb_id": "tt1"}
	got := src.Without("tvdb_id")
	if _, ok := got["tvdb_id"]; ok {
		t.Fatalf("expected tvdb_id removed, got %v", got)
	}
	if src.Get("tvdb_id") != "1" {
		t.Fatal("Without must not mutate the source")
	}
}

func TestKeysSorted(t *testing.T) {
	src := indexers.Externals{"tvmaze_id": "3", "imdb_id": "tt1", "tvdb_id": "1"}
	got := src.Keys()
	want := []string{"imdb_id", "tvdb_id", "tvmaze_id"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
}
