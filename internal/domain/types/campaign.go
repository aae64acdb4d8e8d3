package types

// CampaignRun summarises one injection-recovery campaign.
type CampaignRun struct {
	ID         string
	SignalType SignalType
	Trials     int
	Tolerance  float64
	Seed       uint64
	Workers    int
	Recovered  int
	Fraction   float64
	CreatedUTC int64
}

// TrialResult is the outcome of a single injection-recovery trial.
type TrialResult struct {
	// Index is the trial's position in the campaign, 0-based.
	Index int
	// Injected holds the parameters that were sampled and injected.
	Injected Params
	// Recovered holds the parameters the optimizer fitted back out.
	// Nil when the recovery call itself failed.
	Recovered Params
	// Objective is the final objective value of the fit.
	Objective float64
	// Converged reports the optimizer's convergence status.
	Converged bool
	// Success reports whether every recovered parameter matched its
	// injected value within the campaign tolerance.
	Success bool
	// Err carries the recovery error message, if the trial errored.
	Err string
}
