package interfaces

import (
	domaintypes "lcforge/internal/domain/types"
)

// SignalModel is a fully-resolved synthetic signal. Parameters are fixed at
// construction; Evaluate is a pure function of the stored parameters and the
// input time sequence.
type SignalModel interface {
	// Type identifies the signal variant.
	Type() domaintypes.SignalType
	// Multiplicative reports how the model flux combines with observed
	// flux: multiplied in when true, added when false.
	Multiplicative() bool
	// Params returns a copy of the resolved parameter mapping.
	Params() domaintypes.Params
	// Evaluate computes model flux on the given time sequence.
	Evaluate(time []float64) ([]float64, error)
}

// TransitEvaluator computes transit photometry for a parameter set. It is an
// external collaborator from the core's point of view; implementations own
// the physics.
type TransitEvaluator interface {
	Evaluate(params domaintypes.Params, time []float64) ([]float64, error)
}

// SpectralEvaluator computes band-integrated flux for a named spectral
// source template. Unknown sources or out-of-domain parameters are rejected
// with an error, never clamped.
type SpectralEvaluator interface {
	Evaluate(source, bandpass string, params domaintypes.Params, time []float64) ([]float64, error)
}

// PeriodSearcher finds the best periodic box signal in a flux series. Used
// only to seed the planet recovery guess.
type PeriodSearcher interface {
	Search(time, flux []float64) (domaintypes.BoxFit, error)
}
