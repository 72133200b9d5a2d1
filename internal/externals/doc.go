// Package externals implements cross-indexer identity resolution for shows.
//
// Given a partial set of external IDs and the indexer it came from, the
// resolver probes every other configured indexer for additional ID mappings
// and optionally consults Trakt as a fallback source. The aggregated set
// drives two checks: whether a show being added already exists in the library
// under another indexer's ID, and whether a persisted mapping links an
// (indexer, series) pair to a library show.
//
// Matching is exact ID equality only. Indexer failures during aggregation are
// soft: a dead provider is logged and skipped, never fatal.
package externals
