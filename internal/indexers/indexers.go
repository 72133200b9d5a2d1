package indexers

import (
	"fmt"
	"sort"
	"strings"
)

// Indexer identifies a metadata provider by its stable numeric code.
type Indexer int

// Indexer codes. These are persisted in the mapping table; never renumber.
const (
	TheTVDB Indexer = 1
	TVmaze  Indexer = 3
	TMDB    Indexer = 4
	IMDB    Indexer = 10
)

// External ID keys. Each indexer's own series ID appears under its mapped-to
// key when carried inside an Externals set.
const (
	KeyTVDB   = "tvdb_id"
	KeyTVmaze = "tvmaze_id"
	KeyTMDB   = "tmdb_id"
	KeyIMDB   = "imdb_id"
	KeyTrakt  = "trakt_id"
)

type definition struct {
	name     string
	slug     string
	mappedTo string
	// hasAPI marks indexers with a queryable API. IMDb is mapping-only.
	hasAPI bool
}

var definitions = map[Indexer]definition{
	TheTVDB: {name: "TheTVDB", slug: "tvdb", mappedTo: KeyTVDB, hasAPI: true},
	TVmaze:  {name: "TVmaze", slug: "tvmaze", mappedTo: KeyTVmaze, hasAPI: true},
	TMDB:    {name: "TMDB", slug: "tmdb", mappedTo: KeyTMDB, hasAPI: true},
	IMDB:    {name: "IMDb", slug: "imdb", mappedTo: KeyIMDB, hasAPI: false},
}

// All returns every known indexer in ascending code order.
func All() []Indexer {
	out := make([]Indexer, 0, len(definitions))
	for ix := range definitions {
		out = append(out, ix)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether the code maps to a defined indexer.
func Known(ix Indexer) bool {
	_, ok := definitions[ix]
	return ok
}

// Name returns the display name for an indexer, or "indexer <code>" for
// unknown codes.
func (ix Indexer) Name() string {
	if def, ok := definitions[ix]; ok {
		return def.name
	}
	return fmt.Sprintf("indexer %d", int(ix))
}

// Slug returns the short lowercase identifier used on the CLI.
func (ix Indexer) Slug() string {
	if def, ok := definitions[ix]; ok {
		return def.slug
	}
	return fmt.Sprintf("indexer-%d", int(ix))
}

func (ix Indexer) String() string {
	return ix.Slug()
}

// MappedTo returns the external key this indexer's own series ID is stored
// under, or "" for unknown codes.
func (ix Indexer) MappedTo() string {
	return definitions[ix].mappedTo
}

// HasAPI reports whether the indexer exposes a queryable API. Mapping-only
// indexers (IMDb) participate in the ID namespace but cannot be probed.
func (ix Indexer) HasAPI() bool {
	return definitions[ix].hasAPI
}

// ForKey returns the indexer whose mapped-to key matches the external key.
func ForKey(key string) (Indexer, bool) {
	for ix, def := range definitions {
		if def.mappedTo == key {
			return ix, true
		}
	}
	return 0, false
}

// Parse accepts an indexer slug or numeric code and returns the indexer.
func Parse(value string) (Indexer, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return 0, fmt.Errorf("indexer not specified")
	}
	for ix, def := range definitions {
		if def.slug == trimmed || strings.ToLower(def.name) == trimmed {
			return ix, nil
		}
	}
	var code int
	if _, err := fmt.Sscanf(trimmed, "%d", &code); err == nil {
		if Known(Indexer(code)) {
			return Indexer(code), nil
		}
	}
	return 0, fmt.Errorf("unknown indexer %q", value)
}

// Others returns every known indexer except origin, in ascending code order.
func Others(origin Indexer) []Indexer {
	out := make([]Indexer, 0, len(definitions)-1)
	for _, ix := range All() {
		if ix != origin {
			out = append(out, ix)
		}
	}
	return out
}
