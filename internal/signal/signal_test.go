package signal_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"lcforge/internal/dist"
	"lcforge/internal/domain"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/sed"
	"lcforge/internal/signal"
)

// recordingSpectralEvaluator captures the arguments it was called with and
// returns a constant flux.
type recordingSpectralEvaluator struct {
	source   string
	bandpass string
	params   domaintypes.Params
	value    float64
}

func (r *recordingSpectralEvaluator) Evaluate(
	source, bandpass string,
	params domaintypes.Params,
	time []float64,
) ([]float64, error) {
	r.source = source
	r.bandpass = bandpass
	r.params = params.Clone()
	flux := make([]float64, len(time))
	for i := range flux {
		flux[i] = r.value
	}
	return flux, nil
}

func TestTransitBuilder_DefaultsApplied(t *testing.T) {
	src := rand.NewPCG(1, 1)
	m, err := signal.NewTransitBuilder(src, nil).
		Planet(signal.PlanetParams{
			Period: dist.Literal(3.5),
			Rprs:   dist.Literal(0.1),
		}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	p := m.Params()
	want := map[string]float64{
		"zpt": 1.0, "ld1": 0.1, "ld2": 0.3, "ld3": 0, "ld4": 0,
		"rho": 1.5, "dil": 0,
		"period": 3.5, "rprs": 0.1, "T0": 5, "impact": 0, "ars": 15,
		"ecosw": 0, "esinw": 0, "occ": 0,
	}
	for name, v := range want {
		if got := p[name]; got != v {
			t.Errorf("param %q = %v, want default %v", name, got, v)
		}
	}
	if !m.Multiplicative() {
		t.Error("transit model must be multiplicative")
	}
	if m.Type() != domaintypes.SignalTransit {
		t.Errorf("type = %v", m.Type())
	}
}

func TestTransitBuilder_SecondPlanetRejected(t *testing.T) {
	src := rand.NewPCG(2, 2)
	planet := signal.PlanetParams{Period: dist.Literal(3), Rprs: dist.Literal(0.05)}
	_, err := signal.NewTransitBuilder(src, nil).
		Planet(planet).
		Planet(planet).
		Build()
	if !errors.Is(err, domain.ErrAlreadyConfigured) {
		t.Fatalf("got %v, want ErrAlreadyConfigured", err)
	}
}

func TestTransitBuilder_RequiredParams(t *testing.T) {
	src := rand.NewPCG(3, 3)

	_, err := signal.NewTransitBuilder(src, nil).Build()
	var ipe *domain.InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("build with no planet: got %v, want InvalidParameterError", err)
	}

	_, err = signal.NewTransitBuilder(src, nil).
		Planet(signal.PlanetParams{Rprs: dist.Literal(0.1)}).
		Build()
	if !errors.As(err, &ipe) || ipe.Name != "period" {
		t.Fatalf("missing period: got %v", err)
	}
}

func TestTransitModel_ResolveOnBuild(t *testing.T) {
	// Distribution-backed parameters resolve exactly once: repeated
	// Params() and Evaluate() calls see the same value.
	src := rand.NewPCG(4, 4)
	m, err := signal.NewTransitBuilder(src, nil).
		Planet(signal.PlanetParams{
			Period: dist.Sampled(dist.Uniform{Lb: 1, Ub: 20}),
			Rprs:   dist.Sampled(dist.Uniform{Lb: 0, Ub: 0.4}),
		}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	first := m.Params()
	for i := 0; i < 5; i++ {
		again := m.Params()
		if again["period"] != first["period"] || again["rprs"] != first["rprs"] {
			t.Fatalf("parameters changed between reads: %v vs %v", again, first)
		}
	}

	time := []float64{0, 1, 2, 3}
	a, err := m.Evaluate(time)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	b, err := m.Evaluate(time)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("evaluate is not pure: flux[%d] %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNewSupernova_DefaultsAndKeplerScaling(t *testing.T) {
	src := rand.NewPCG(5, 5)
	fake := &recordingSpectralEvaluator{value: 2.0}

	m, err := signal.NewSupernova(src, fake, signal.SupernovaConfig{
		T0:    dist.Literal(30),
		Extra: map[string]dist.Value{"amplitude": dist.Literal(1)},
	})
	if err != nil {
		t.Fatalf("new supernova: %v", err)
	}
	if m.Source() != "hsiao" || m.Bandpass() != "kepler" {
		t.Fatalf("defaults = %q/%q", m.Source(), m.Bandpass())
	}
	if m.Multiplicative() {
		t.Error("supernova model must be additive")
	}
	if z := m.Params()["z"]; z != 0.5 {
		t.Errorf("default z = %v, want 0.5", z)
	}

	flux, err := m.Evaluate([]float64{0, 1})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := 2.0 * sed.KeplerEffectiveAreaCm2
	if flux[0] != want || flux[1] != want {
		t.Fatalf("kepler flux = %v, want %v", flux, want)
	}
}

func TestNewSupernova_NonKeplerBandpassUnscaled(t *testing.T) {
	src := rand.NewPCG(6, 6)
	fake := &recordingSpectralEvaluator{value: 3.0}

	m, err := signal.NewSupernova(src, fake, signal.SupernovaConfig{
		T0:       dist.Literal(0),
		Bandpass: "sdssr",
	})
	if err != nil {
		t.Fatalf("new supernova: %v", err)
	}
	flux, err := m.Evaluate([]float64{0})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if flux[0] != 3.0 {
		t.Fatalf("non-kepler flux = %v, want raw 3.0", flux[0])
	}
}

func TestNewSupernova_T0RequiredAndErrorPropagation(t *testing.T) {
	src := rand.NewPCG(7, 7)

	_, err := signal.NewSupernova(src, nil, signal.SupernovaConfig{})
	var ipe *domain.InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("missing T0: got %v, want InvalidParameterError", err)
	}

	// Unknown source propagates from the evaluator as EvaluationError.
	m, err := signal.NewSupernova(src, nil, signal.SupernovaConfig{
		T0:     dist.Literal(0),
		Source: "no-such-template",
	})
	if err != nil {
		t.Fatalf("new supernova: %v", err)
	}
	_, err = m.Evaluate([]float64{0})
	var evalErr *domain.EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("got %v, want EvaluationError", err)
	}
}
