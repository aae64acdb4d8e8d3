package interfaces

import (
	"context"

	domaintypes "lcforge/internal/domain/types"
)

// Injector merges a model's synthetic flux into an observed light curve.
type Injector interface {
	Inject(lc domaintypes.LightCurve, model SignalModel) (domaintypes.SyntheticLightCurve, error)
}

// Recoverer fits signal parameters back out of a light curve by bounded
// maximum-likelihood optimization. A nil guess selects the signal-type
// heuristic; a non-nil guess is used verbatim. The context bounds the
// optimization run, giving callers per-trial timeout control.
type Recoverer interface {
	Recover(
		ctx context.Context,
		lc domaintypes.LightCurve,
		signalType domaintypes.SignalType,
		guess []float64,
	) (domaintypes.RecoveryResult, error)
}
