// Package sed implements the built-in spectral-template evaluator for
// supernova signals.
//
// Templates are analytic stand-ins for sampled spectral time series: each
// named source maps a rest-frame phase and a small parameter set to
// band-integrated flux. The core depends only on the SpectralEvaluator
// contract, so a table-driven template library can replace this package
// without touching injection or recovery.
package sed
