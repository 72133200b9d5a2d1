// Package tvdb provides a minimal TheTVDB API client covering login and
// series search by remote ID.
package tvdb
