package recovery_test

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"lcforge/internal/bls"
	"lcforge/internal/dist"
	"lcforge/internal/domain"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/inject"
	"lcforge/internal/recovery"
	"lcforge/internal/signal"
)

// countingSpectralEvaluator counts calls and optionally fails.
type countingSpectralEvaluator struct {
	calls int
	fail  error
}

func (c *countingSpectralEvaluator) Evaluate(
	source, bandpass string,
	params domaintypes.Params,
	time []float64,
) ([]float64, error) {
	c.calls++
	if c.fail != nil {
		return nil, c.fail
	}
	return make([]float64, len(time)), nil
}

func flatCurve(n int, span, flux, fluxErr float64) domaintypes.LightCurve {
	lc := domaintypes.LightCurve{
		Time:    make([]float64, n),
		Flux:    make([]float64, n),
		FluxErr: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		lc.Time[i] = span * float64(i) / float64(n-1)
		lc.Flux[i] = flux
		lc.FluxErr[i] = fluxErr
	}
	return lc
}

func TestRecover_UnsupportedSignalType(t *testing.T) {
	svc := recovery.New(nil, nil)
	lc := flatCurve(32, 10, 1, 0.001)

	_, err := svc.Recover(context.Background(), lc, "pulsar", nil)
	var unsupported *domain.UnsupportedSignalTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want UnsupportedSignalTypeError", err)
	}
}

func TestRecover_GuessLengthMismatch(t *testing.T) {
	svc := recovery.New(nil, nil)
	lc := flatCurve(32, 10, 1, 0.001)

	_, err := svc.Recover(context.Background(), lc, domaintypes.SignalSupernova, []float64{1, 2})
	var ipe *domain.InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("got %v, want InvalidParameterError", err)
	}
}

// TestRecover_BoundsGuardShortCircuits forces the redshift outside [0, 3]
// and checks the external evaluator is never consulted.
func TestRecover_BoundsGuardShortCircuits(t *testing.T) {
	counting := &countingSpectralEvaluator{}
	svc := recovery.New(nil, counting)
	lc := flatCurve(64, 100, 1, 0.001)

	// Guess layout is {t0, z, amplitude, background}; z=5 is out of
	// bounds so every objective call must hit the penalty guard.
	res, err := svc.Recover(context.Background(), lc, domaintypes.SignalSupernova,
		[]float64{50, 5.0, 3e-4, 1.0})
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if counting.calls != 0 {
		t.Fatalf("evaluator called %d times for an out-of-bounds redshift", counting.calls)
	}
	if res.Evaluations != 0 {
		t.Fatalf("result reports %d model evaluations, want 0", res.Evaluations)
	}
}

func TestRecover_EvaluatorFailureAbortsCall(t *testing.T) {
	counting := &countingSpectralEvaluator{fail: errors.New("template blew up")}
	svc := recovery.New(nil, counting)
	lc := flatCurve(64, 100, 1, 0.001)

	_, err := svc.Recover(context.Background(), lc, domaintypes.SignalSupernova, nil)
	var evalErr *domain.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("got %v, want EvaluationError", err)
	}
}

func TestRecover_CanceledContext(t *testing.T) {
	svc := recovery.New(nil, nil)
	lc := flatCurve(64, 100, 1, 0.001)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Recover(ctx, lc, domaintypes.SignalSupernova, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

// TestRecover_SupernovaZeroNoise injects a known supernova into a noiseless
// flat curve and checks recovery converges back to the truth from a nearby
// guess.
func TestRecover_SupernovaZeroNoise(t *testing.T) {
	const (
		trueT0  = 30.0
		trueZ   = 0.3
		trueAmp = 5e-4
		trueBkg = 1.0
	)
	src := rand.NewPCG(21, 0)
	model, err := signal.NewSupernova(src, nil, signal.SupernovaConfig{
		T0: dist.Literal(trueT0),
		Z:  dist.Literal(trueZ),
		Extra: map[string]dist.Value{
			"amplitude": dist.Literal(trueAmp),
		},
	})
	if err != nil {
		t.Fatalf("new supernova: %v", err)
	}

	base := flatCurve(400, 100, trueBkg, 0.01)
	synth, err := inject.New(nil).Inject(base, model)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}

	svc := recovery.New(nil, nil)
	res, err := svc.Recover(context.Background(), synth.LightCurve,
		domaintypes.SignalSupernova, []float64{29, 0.35, 4e-4, 0.98})
	if err != nil {
		t.Fatalf("recover: %v", err)
	}

	checks := []struct {
		name  string
		truth float64
		tol   float64
	}{
		{"t0", trueT0, 0.5},
		{"z", trueZ, 0.05},
		{"amplitude", trueAmp, 0.2 * trueAmp},
		{"background", trueBkg, 0.01},
	}
	for _, c := range checks {
		got := res.Params[c.name]
		if math.Abs(got-c.truth) > c.tol {
			t.Errorf("%s = %v, want %v within %v (status %q)", c.name, got, c.truth, c.tol, res.Status)
		}
	}
}

// TestRecover_PlanetZeroNoise does the same for a transit signal, seeding
// the fit close to the injected parameters.
func TestRecover_PlanetZeroNoise(t *testing.T) {
	src := rand.NewPCG(22, 0)
	model, err := signal.NewTransitBuilder(src, nil).
		Planet(signal.PlanetParams{
			Period: dist.Literal(3.5),
			Rprs:   dist.Literal(0.1),
			T0:     dist.Literal(2.0),
		}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	base := flatCurve(1000, 10, 1.0, 0.001)
	synth, err := inject.New(nil).Inject(base, model)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}

	svc := recovery.New(nil, nil)
	// Guess layout is {T0, period, rprs, impact}.
	res, err := svc.Recover(context.Background(), synth.LightCurve,
		domaintypes.SignalTransit, []float64{2.01, 3.49, 0.1, 0.05})
	if err != nil {
		t.Fatalf("recover: %v", err)
	}

	if got := res.Params["period"]; math.Abs(got-3.5) > 0.07 {
		t.Errorf("period = %v, want 3.5 (status %q)", got, res.Status)
	}
	if got := res.Params["rprs"]; math.Abs(got-0.1) > 0.02 {
		t.Errorf("rprs = %v, want 0.1", got)
	}
	if got := res.Params["T0"]; math.Abs(got-2.0) > 0.15 {
		t.Errorf("T0 = %v, want 2.0", got)
	}
}

// TestRecover_HeuristicGuessWithSearch checks the BLS-seeded heuristic path
// produces a period guess near the injected one even before optimization
// polishes it.
func TestRecover_HeuristicGuessWithSearch(t *testing.T) {
	src := rand.NewPCG(23, 0)
	model, err := signal.NewTransitBuilder(src, nil).
		Planet(signal.PlanetParams{
			Period: dist.Literal(3.5),
			Rprs:   dist.Literal(0.1),
			T0:     dist.Literal(2.0),
		}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	base := flatCurve(2800, 14, 1.0, 0.001)
	synth, err := inject.New(nil).Inject(base, model)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}

	svc := recovery.New(nil, nil, recovery.WithPeriodSearcher(bls.New()))
	res, err := svc.Recover(context.Background(), synth.LightCurve,
		domaintypes.SignalTransit, nil)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if res.Params == nil || res.Status == "" {
		t.Fatalf("degenerate result: %+v", res)
	}
	// The fitted period should sit at the true period or a sub-multiple.
	p := res.Params["period"]
	if p <= 0 {
		t.Fatalf("fitted period %v", p)
	}
	m := math.Round(3.5 / p)
	if m >= 1 && math.Abs(m*p-3.5) > 0.2 {
		t.Errorf("period %v not near a sub-multiple of 3.5", p)
	}
}
