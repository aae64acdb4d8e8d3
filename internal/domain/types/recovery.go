package types

// RecoveryResult is the outcome of one maximum-likelihood recovery run.
//
// A non-converged fit is still a result: the optimizer's best vector is
// informative even when the convergence criterion was not met, so failure to
// converge is reported through Converged/Status rather than as an error.
type RecoveryResult struct {
	// Params maps each free parameter name to its recovered value.
	Params Params
	// Converged reports whether the optimizer met its convergence criterion.
	Converged bool
	// Status is the optimizer's terminal status in human-readable form.
	Status string
	// Objective is the final value of the 0.5*chi-square objective.
	Objective float64
	// Evaluations counts objective evaluations that reached the model,
	// excluding those short-circuited by the bounds guard.
	Evaluations int
}

// BoxFit is the outcome of a box-least-squares period search, used to seed
// the planet recovery guess.
type BoxFit struct {
	// Period is the best trial period, in the time units of the series.
	Period float64
	// Depth is the fitted box depth (out-of-box level minus in-box level).
	Depth float64
	// Power is the detection statistic of the best candidate.
	Power float64
	// NBins is the number of phase bins the series was folded into.
	NBins int
	// StartBin and EndBin delimit the in-transit phase bins, inclusive.
	StartBin int
	EndBin   int
}

// MidPhase returns the phase of the detected transit's midpoint in [0, 1).
func (b BoxFit) MidPhase() float64 {
	if b.NBins == 0 {
		return 0
	}
	return (float64(b.StartBin) + float64(b.EndBin) + 1) / (2 * float64(b.NBins))
}
