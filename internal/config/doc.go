// Package config loads, normalizes, and validates showlink configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TVDB_API_KEY and TMDB_API_KEY. The Config type centralizes every knob the
// CLI needs: the data directory backing the library database, per-indexer
// credentials and base URLs, Trakt settings, and log output options.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
