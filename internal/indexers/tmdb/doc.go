// Package tmdb provides a minimal TMDB API client covering the /find
// endpoint used for reverse lookups by external ID.
package tmdb
