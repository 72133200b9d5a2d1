package main

import (
	"fmt"
	"sort"
	"strings"

	"showlink/internal/indexers"
)

// parseIndexerArg resolves a CLI indexer argument, which may be a slug,
// a display name, or a numeric code.
func parseIndexerArg(value string) (indexers.Indexer, error) {
	ix, err := indexers.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("unknown indexer %q (valid: %s)", value, strings.Join(indexerSlugs(), ", "))
	}
	return ix, nil
}

func indexerSlugs() []string {
	all := indexers.All()
	slugs := make([]string, 0, len(all))
	for _, ix := range all {
		slugs = append(slugs, ix.Slug())
	}
	return slugs
}

// parseExternalPairs converts key=value CLI arguments into an external ID
// set. Keys must be known external ID keys.
func parseExternalPairs(pairs []string) (indexers.Externals, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	externals := make(indexers.Externals, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			return nil, fmt.Errorf("invalid external id %q, expected key=value", pair)
		}
		if !validExternalKey(key) {
			return nil, fmt.Errorf("unknown external id key %q (valid: %s)", key, strings.Join(externalKeys(), ", "))
		}
		externals[key] = value
	}
	return externals, nil
}

func validExternalKey(key string) bool {
	for _, known := range externalKeys() {
		if key == known {
			return true
		}
	}
	return false
}

func externalKeys() []string {
	keys := []string{indexers.KeyTrakt}
	for _, ix := range indexers.All() {
		keys = append(keys, ix.MappedTo())
	}
	sort.Strings(keys)
	return keys
}
