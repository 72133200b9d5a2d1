// Package tvmaze provides a minimal TVmaze API client covering the
// /lookup/shows reverse-lookup endpoint. TVmaze requires no credentials.
package tvmaze
