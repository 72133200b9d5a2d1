// Package trakt provides a minimal Trakt API client used as a fallback ID
// source: given one known external ID it returns the full ID set Trakt tracks
// for the matching show.
package trakt
