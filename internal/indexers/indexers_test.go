package indexers_test

import (
	"testing"

	"showlink/internal/indexers"
)

func TestParseAcceptsSlugNameAndCode(t *testing.T) {
	cases := []struct {
		input string
		want  indexers.Indexer
	}{
		{"tvdb", indexers.TheTVDB},
		{"TheTVDB", indexers.TheTVDB},
		{"tvmaze", indexers.TVmaze},
		{"tmdb", indexers.TMDB},
		{"imdb", indexers.IMDB},
		{"4", indexers.TMDB},
		{" 10 ", indexers.IMDB},
	}
	for _, tc := range cases {
		got, err := indexers.Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "anidb", "99"} {
		if _, err := indexers.Parse(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestMappedToRoundTripsThroughForKey(t *testing.T) {
	for _, ix := range indexers.All() {
		key := ix.MappedTo()
		if key == "" {
			t.Fatalf("indexer %v has no mapped-to key", ix)
		}
		back, ok := indexers.ForKey(key)
		if !ok || back != ix {
			t.Fatalf("ForKey(%q) = %v, %v; want %v", key, back, ok, ix)
		}
	}
	if _, ok := indexers.ForKey("trakt_id"); ok {
		t.Fatal("trakt_id must not reverse-map to an indexer")
	}
}

func TestOthersExcludesOrigin(t *testing.T) {
	others := indexers.Others(indexers.TheTVDB)
	if len(others) != len(indexers.All())-1 {
		t.Fatalf("unexpected others length: %v", others)
	}
	for _, ix := range others {
		if ix == indexers.TheTVDB {
			t.Fatalf("origin present in others: %v", others)
		}
	}
	for i := 1; i < len(others); i++ {
		if others[i-1] >= others[i] {
			t.Fatalf("others not sorted: %v", others)
		}
	}
}

func TestIMDBHasNoAPI(t *testing.T) {
	if indexers.IMDB.HasAPI() {
		t.Fatal("IMDb must be mapping-only")
	}
	if !indexers.TheTVDB.HasAPI() {
		t.Fatal("TheTVDB must have an API")
	}
}
