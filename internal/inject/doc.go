// Package inject merges synthetic signal models into observed light curves.
//
// It evaluates a model over the observed time column, combines model flux
// with observed flux multiplicatively or additively according to the model's
// combination mode, and labels the result with injection provenance for
// later recovery scoring.
package inject
