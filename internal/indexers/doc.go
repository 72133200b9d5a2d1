// Package indexers defines the fixed set of metadata providers showlink knows
// about, the external-ID key namespace shared between them, and the registry
// that hands out reverse-lookup clients per indexer.
//
// Each indexer has a stable numeric code and a "mapped-to" external key: the
// key under which that indexer's own series ID appears inside an Externals
// set. The codes and keys are part of the mapping table's on-disk format and
// must never be renumbered.
package indexers
