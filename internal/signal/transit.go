package signal

import (
	"math/rand/v2"

	"lcforge/internal/dist"
	"lcforge/internal/domain"
	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/photom"
)

// Transit parameter defaults applied when the builder is not given an
// explicit value.
const (
	defaultZpt    = 1.0
	defaultLd1    = 0.1 // quadratic law
	defaultLd2    = 0.3
	defaultRho    = 1.5
	defaultT0     = 5.0
	defaultArs    = 15.0
	defaultImpact = 0.0 // inclination 90 degrees
)

// StarParams configures the host star. Unset fields take the documented
// defaults; each field may be a literal or a distribution.
type StarParams struct {
	Zpt dist.Value // photometric zeropoint
	Ld1 dist.Value // limb darkening coefficients, quadratic law by default
	Ld2 dist.Value
	Ld3 dist.Value
	Ld4 dist.Value
	Rho dist.Value // mean stellar density, cgs
	Dil dist.Value // dilution fraction
}

// PlanetParams configures the transiting planet. Period and Rprs are
// required; the rest default as documented.
type PlanetParams struct {
	Period dist.Value // orbital period, days
	Rprs   dist.Value // planet radius / star radius
	T0     dist.Value // mid-transit time
	Impact dist.Value // impact parameter
	Ars    dist.Value // semi-major axis in stellar radii
	Ecosw  dist.Value // eccentricity vector
	Esinw  dist.Value
	Occ    dist.Value // secondary eclipse depth, ppm
}

// TransitBuilder assembles an immutable TransitModel. Configure the star,
// add exactly one planet, then Build. Adding a second planet is an error
// rather than a silent overwrite.
type TransitBuilder struct {
	src       rand.Source
	eval      interfaces.TransitEvaluator
	params    domaintypes.Params
	hasPlanet bool
	err       error
}

// NewTransitBuilder returns a builder that resolves distribution-backed
// parameters using src. A nil evaluator selects the built-in photometry
// evaluator.
func NewTransitBuilder(src rand.Source, eval interfaces.TransitEvaluator) *TransitBuilder {
	if eval == nil {
		eval = photom.New()
	}
	return &TransitBuilder{
		src:    src,
		eval:   eval,
		params: make(domaintypes.Params),
	}
}

// Star resolves and records the star-level parameters. Later calls overwrite
// earlier ones; the star holds no per-instance identity the way a planet does.
func (b *TransitBuilder) Star(p StarParams) *TransitBuilder {
	if b.err != nil {
		return b
	}
	b.params[photom.ParamZpt] = p.Zpt.ResolveOr(b.src, defaultZpt)
	b.params[photom.ParamLd1] = p.Ld1.ResolveOr(b.src, defaultLd1)
	b.params[photom.ParamLd2] = p.Ld2.ResolveOr(b.src, defaultLd2)
	b.params[photom.ParamLd3] = p.Ld3.ResolveOr(b.src, 0)
	b.params[photom.ParamLd4] = p.Ld4.ResolveOr(b.src, 0)
	b.params[photom.ParamRho] = p.Rho.ResolveOr(b.src, defaultRho)
	b.params[photom.ParamDil] = p.Dil.ResolveOr(b.src, 0)
	return b
}

// Planet resolves and records the planet parameters. Exactly one planet per
// model: a second call fails with ErrAlreadyConfigured.
func (b *TransitBuilder) Planet(p PlanetParams) *TransitBuilder {
	if b.err != nil {
		return b
	}
	if b.hasPlanet {
		b.err = domain.ErrAlreadyConfigured
		return b
	}
	if !p.Period.Set() {
		b.err = &domain.InvalidParameterError{Name: photom.ParamPeriod, Reason: "required"}
		return b
	}
	if !p.Rprs.Set() {
		b.err = &domain.InvalidParameterError{Name: photom.ParamRprs, Reason: "required"}
		return b
	}
	b.params[photom.ParamPeriod] = p.Period.Resolve(b.src)
	b.params[photom.ParamRprs] = p.Rprs.Resolve(b.src)
	b.params[photom.ParamT0] = p.T0.ResolveOr(b.src, defaultT0)
	b.params[photom.ParamImpact] = p.Impact.ResolveOr(b.src, defaultImpact)
	b.params[photom.ParamArs] = p.Ars.ResolveOr(b.src, defaultArs)
	b.params[photom.ParamEcosw] = p.Ecosw.ResolveOr(b.src, 0)
	b.params[photom.ParamEsinw] = p.Esinw.ResolveOr(b.src, 0)
	b.params[photom.ParamOcc] = p.Occ.ResolveOr(b.src, 0)
	b.hasPlanet = true
	return b
}

// Build returns the immutable model, or the first configuration error.
func (b *TransitBuilder) Build() (*TransitModel, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.hasPlanet {
		return nil, &domain.InvalidParameterError{Name: "planet", Reason: "no planet configured"}
	}
	if _, ok := b.params[photom.ParamZpt]; !ok {
		// Star was never configured; apply its defaults.
		b.Star(StarParams{})
	}
	return &TransitModel{params: b.params.Clone(), eval: b.eval}, nil
}

// TransitModel is a multiplicative planetary transit signal with fixed,
// fully-resolved parameters.
type TransitModel struct {
	params domaintypes.Params
	eval   interfaces.TransitEvaluator
}

// Type returns the transit signal type.
func (m *TransitModel) Type() domaintypes.SignalType { return domaintypes.SignalTransit }

// Multiplicative reports that transit flux multiplies the observed flux.
func (m *TransitModel) Multiplicative() bool { return true }

// Params returns a copy of the resolved parameters.
func (m *TransitModel) Params() domaintypes.Params { return m.params.Clone() }

// Evaluate delegates to the transit-photometry evaluator.
func (m *TransitModel) Evaluate(time []float64) ([]float64, error) {
	flux, err := m.eval.Evaluate(m.params, time)
	if err != nil {
		return nil, wrapEval("transit", err)
	}
	return flux, nil
}

var _ interfaces.SignalModel = (*TransitModel)(nil)
