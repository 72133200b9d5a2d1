package indexers

import (
	"sort"
	"strings"
)

// Externals maps external ID keys (tvdb_id, imdb_id, ...) to provider
// identifiers. Values are strings so IMDb "tt" IDs survive round-trips;
// numeric providers carry decimal strings.
type Externals map[string]string

// Clone returns a copy of the set with blank keys and values dropped.
func (e Externals) Clone() Externals {
	out := make(Externals, len(e))
	for key, value := range e {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Update merges other into e. Later sources overwrite existing entries, so
// sweep order decides which provider wins a contested key.
func (e Externals) Update(other Externals) {
	for key, value := range other {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		e[key] = value
	}
}

// Without returns a copy of the set with the given key removed.
func (e Externals) Without(key string) Externals {
	out := e.Clone()
	delete(out, key)
	return out
}

// Get returns the value for key, or "" when absent.
func (e Externals) Get(key string) string {
	return e[key]
}

// Keys returns the set's keys in sorted order.
func (e Externals) Keys() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
