package recovery

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"

	"lcforge/internal/domain"
	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/photom"
	"lcforge/internal/sed"
	"lcforge/internal/signal"
)

const (
	// penalty is returned by the objective instead of evaluating the
	// model when the trial vector leaves the parameter box. It keeps the
	// objective surface bounded and avoids wasted evaluator calls.
	penalty = 1e12

	// chi2Epsilon marks a residual as numerically degenerate. A
	// chi-square this small also triggers the penalty; see DESIGN.md for
	// why this quirk is preserved.
	chi2Epsilon = 1e-6

	maxMajorIterations  = 3000
	maxFuncEvaluations  = 20000
	convergenceAbsolute = 1e-12
	convergenceWindow   = 120
)

// Service recovers injected signal parameters by bounded maximum-likelihood
// optimization.
type Service struct {
	transit  interfaces.TransitEvaluator
	spectral interfaces.SpectralEvaluator
	searcher interfaces.PeriodSearcher
	log      *zap.Logger
	source   string
	bandpass string
}

// Option configures a recovery Service.
type Option func(*Service)

// WithPeriodSearcher supplies the box-least-squares collaborator used to
// refine the planet initial guess.
func WithPeriodSearcher(p interfaces.PeriodSearcher) Option {
	return func(s *Service) { s.searcher = p }
}

// WithLogger attaches a structured logger for fit telemetry.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithTemplate overrides the source template and bandpass assumed when
// fitting supernova signals.
func WithTemplate(source, bandpass string) Option {
	return func(s *Service) {
		s.source = source
		s.bandpass = bandpass
	}
}

// New returns a recoverer. Nil evaluators select the built-in photometry and
// template backends.
func New(transit interfaces.TransitEvaluator, spectral interfaces.SpectralEvaluator, opts ...Option) *Service {
	s := &Service{
		transit:  transit,
		spectral: spectral,
		log:      zap.NewNop(),
		source:   signal.DefaultSource,
		bandpass: signal.DefaultBandpass,
	}
	if s.transit == nil {
		s.transit = photom.New()
	}
	if s.spectral == nil {
		s.spectral = sed.New()
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Recover fits the named signal type to lc. A nil guess selects the
// signal-type heuristic; otherwise guess is used verbatim and must match the
// free-parameter count. The context bounds the optimization run; on
// cancellation the context error is returned.
func (s *Service) Recover(
	ctx context.Context,
	lc domaintypes.LightCurve,
	signalType domaintypes.SignalType,
	guess []float64,
) (domaintypes.RecoveryResult, error) {
	if !lc.Aligned() || lc.Len() == 0 {
		return domaintypes.RecoveryResult{}, domain.ErrMisalignedLightCurve
	}

	var prob fitProblem
	switch signalType {
	case domaintypes.SignalTransit:
		prob = s.planetProblem(lc)
	case domaintypes.SignalSupernova:
		prob = s.supernovaProblem(lc)
	default:
		return domaintypes.RecoveryResult{}, &domain.UnsupportedSignalTypeError{SignalType: signalType}
	}

	x0 := prob.x0
	if guess != nil {
		if len(guess) != len(prob.names) {
			return domaintypes.RecoveryResult{}, &domain.InvalidParameterError{
				Name:   "guess",
				Value:  float64(len(guess)),
				Reason: "length does not match the free-parameter count",
			}
		}
		x0 = append([]float64(nil), guess...)
	}

	var (
		evalCount int
		evalErr   error
		canceled  bool
	)
	objective := func(x []float64) float64 {
		if canceled || evalErr != nil {
			return penalty
		}
		if ctx.Err() != nil {
			canceled = true
			return penalty
		}
		if !prob.inBounds(x) {
			return penalty
		}

		modelFlux, err := prob.model(x, lc.Time)
		if err != nil {
			evalErr = err
			return penalty
		}
		evalCount++

		var chi2 float64
		for i := range modelFlux {
			sigma := 1.0
			if lc.FluxErr != nil && lc.FluxErr[i] > 0 {
				sigma = lc.FluxErr[i]
			}
			r := (lc.Flux[i] - modelFlux[i]) / sigma
			chi2 += r * r
		}
		if chi2 < chi2Epsilon {
			return penalty
		}
		return 0.5 * chi2
	}

	settings := &optimize.Settings{
		MajorIterations: maxMajorIterations,
		FuncEvaluations: maxFuncEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   convergenceAbsolute,
			Iterations: convergenceWindow,
		},
	}
	res, optErr := optimize.Minimize(
		optimize.Problem{Func: objective},
		append([]float64(nil), x0...),
		settings,
		&optimize.NelderMead{},
	)

	if evalErr != nil {
		var wrapped *domain.EvaluationError
		if !errors.As(evalErr, &wrapped) {
			evalErr = &domain.EvaluationError{Op: "recovery.Recover", Err: evalErr}
		}
		return domaintypes.RecoveryResult{}, evalErr
	}
	if canceled {
		return domaintypes.RecoveryResult{}, ctx.Err()
	}

	result := domaintypes.RecoveryResult{
		Params:      make(domaintypes.Params, len(prob.names)),
		Evaluations: evalCount,
	}
	switch {
	case optErr != nil:
		// Optimizer breakdown is a non-converged fit, not a failure of
		// the recovery call: the best vector is still informative.
		result.Status = optErr.Error()
		for i, name := range prob.names {
			result.Params[name] = x0[i]
		}
		if res != nil && res.X != nil {
			for i, name := range prob.names {
				result.Params[name] = res.X[i]
			}
			result.Objective = res.F
		}
	default:
		for i, name := range prob.names {
			result.Params[name] = res.X[i]
		}
		result.Objective = res.F
		result.Status = res.Status.String()
		result.Converged = convergedStatus(res.Status)
	}

	s.log.Debug("recovery finished",
		zap.String("signal_type", signalType.String()),
		zap.String("status", result.Status),
		zap.Bool("converged", result.Converged),
		zap.Float64("objective", result.Objective),
		zap.Int("model_evaluations", evalCount),
	)
	return result, nil
}

// convergedStatus reports whether the optimizer status is a genuine
// convergence criterion rather than a resource limit.
func convergedStatus(st optimize.Status) bool {
	switch st {
	case optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.FunctionThreshold,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}

var _ interfaces.Recoverer = (*Service)(nil)
