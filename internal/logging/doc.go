// Package logging constructs the slog loggers used throughout showlink.
//
// Loggers are built from configuration (console or JSON format, optional log
// file fanout) and carry standardized attribute keys so that resolve runs can
// be correlated across components. Context helpers lift component, indexer,
// series, and correlation identifiers out of a context.Context and into
// structured fields.
package logging
