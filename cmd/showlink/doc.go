// Package main hosts the showlink CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces external ID resolution, duplicate
// checks against the show library, mapping persistence, configuration
// scaffolding, and provider health checks. It centralizes configuration
// resolution, logger setup, and store access so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
