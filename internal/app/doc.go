// Package app loads configuration and wires the dependency graph for the
// CLI: evaluators, period search, injector, recoverer, campaign runner, and
// the optional results store.
package app
