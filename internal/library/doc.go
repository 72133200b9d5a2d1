// Package library manages the show library and indexer mapping persistence
// backed by SQLite.
//
// Two tables matter: shows, the set of series already in the library with
// their known external IDs, and indexer_mapping, a join table recording which
// series ID on one indexer corresponds to which series ID on another. The
// store enforces single-writer access with a file lock next to the database.
package library
