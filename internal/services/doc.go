// Package services provides shared plumbing for showlink components: error
// classification sentinels with a Wrap helper, and context annotation for
// structured logging (component, indexer, series id, correlation id).
package services
