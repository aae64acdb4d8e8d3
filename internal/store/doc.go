// Package store provides SQLite-backed persistence for campaign results.
//
// It records one row per campaign run plus one row per trial, with parameter
// mappings serialised as JSON. Light-curve data itself is never persisted;
// the store only keeps recovery outcomes for later sensitivity analysis.
package store
