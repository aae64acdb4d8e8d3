package signal

import (
	"errors"
	"math/rand/v2"

	"lcforge/internal/dist"
	"lcforge/internal/domain"
	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/sed"
)

// Supernova defaults.
const (
	DefaultSource   = "hsiao"
	DefaultBandpass = sed.BandpassKepler
	defaultRedshift = 0.5
)

// SupernovaConfig configures a supernova model. T0 is required. Extra holds
// arbitrary template parameters (amplitude, or x0/x1/c for stretch/color
// templates), each resolvable from a distribution.
type SupernovaConfig struct {
	T0       dist.Value
	Source   string
	Bandpass string
	Z        dist.Value
	Extra    map[string]dist.Value
}

// SupernovaModel is an additive supernova signal with fixed, fully-resolved
// parameters.
type SupernovaModel struct {
	source   string
	bandpass string
	params   domaintypes.Params
	eval     interfaces.SpectralEvaluator
}

// NewSupernova resolves cfg into an immutable model. A nil evaluator selects
// the built-in template evaluator.
func NewSupernova(
	src rand.Source,
	eval interfaces.SpectralEvaluator,
	cfg SupernovaConfig,
) (*SupernovaModel, error) {
	if eval == nil {
		eval = sed.New()
	}
	if !cfg.T0.Set() {
		return nil, &domain.InvalidParameterError{Name: sed.ParamT0, Reason: "required"}
	}

	source := cfg.Source
	if source == "" {
		source = DefaultSource
	}
	bandpass := cfg.Bandpass
	if bandpass == "" {
		bandpass = DefaultBandpass
	}

	params := domaintypes.Params{
		sed.ParamT0: cfg.T0.Resolve(src),
		sed.ParamZ:  cfg.Z.ResolveOr(src, defaultRedshift),
	}
	for name, v := range cfg.Extra {
		params[name] = v.Resolve(src)
	}

	return &SupernovaModel{
		source:   source,
		bandpass: bandpass,
		params:   params,
		eval:     eval,
	}, nil
}

// Type returns the supernova signal type.
func (m *SupernovaModel) Type() domaintypes.SignalType { return domaintypes.SignalSupernova }

// Multiplicative reports that supernova flux adds to the observed flux.
func (m *SupernovaModel) Multiplicative() bool { return false }

// Params returns a copy of the resolved parameters.
func (m *SupernovaModel) Params() domaintypes.Params { return m.params.Clone() }

// Source returns the spectral source template name.
func (m *SupernovaModel) Source() string { return m.source }

// Bandpass returns the bandpass filter name.
func (m *SupernovaModel) Bandpass() string { return m.bandpass }

// Evaluate delegates to the spectral-template evaluator. Flux through the
// instrument's standard bandpass is rescaled by the effective collecting
// area into native electron count rates; other bandpasses are returned raw.
func (m *SupernovaModel) Evaluate(time []float64) ([]float64, error) {
	flux, err := m.eval.Evaluate(m.source, m.bandpass, m.params, time)
	if err != nil {
		return nil, wrapEval("supernova", err)
	}
	if m.bandpass == sed.BandpassKepler {
		for i := range flux {
			flux[i] *= sed.KeplerEffectiveAreaCm2
		}
	}
	return flux, nil
}

var _ interfaces.SignalModel = (*SupernovaModel)(nil)

// wrapEval guarantees evaluator failures surface as EvaluationError without
// double wrapping.
func wrapEval(op string, err error) error {
	var evalErr *domain.EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}
	return &domain.EvaluationError{Op: op, Err: err}
}
