// Package signal defines the synthetic signal models that get injected into
// light curves: a multiplicative planetary transit and an additive supernova.
//
// Models are immutable once built. Every parameter accepts either a literal
// or a distribution (dist.Value); distributions are resolved exactly once at
// construction, so repeated Evaluate calls see identical parameters. Flux
// computation is delegated to the external evaluator contracts in
// internal/domain/interfaces.
package signal
