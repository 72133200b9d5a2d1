// Package preflight provides readiness checks for the indexer APIs and
// filesystem paths that showlink depends on.
//
// The CLI "showlink health" command runs RunAll and renders the results.
// Each provider check is gated by its config toggle -- disabled or
// unconfigured providers are skipped, with the data directory always checked.
package preflight
