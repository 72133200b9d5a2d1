package library

import (
	"time"

	"showlink/internal/indexers"
)

// Show is a series already present in the library.
type Show struct {
	ID        int64
	Indexer   indexers.Indexer
	SeriesID  string
	Title     string
	Externals indexers.Externals
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mapping is one row of the indexer_mapping join table: the series known as
// SeriesID on Indexer is known as MappedSeriesID on MappedIndexer.
type Mapping struct {
	SeriesID       string
	Indexer        indexers.Indexer
	MappedSeriesID string
	MappedIndexer  indexers.Indexer
}

// HealthSummary aggregates library contents for diagnostic output.
type HealthSummary struct {
	Shows    int
	Mappings int
}

// DatabaseHealth reports diagnostic information about the library database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	Error            string
}
