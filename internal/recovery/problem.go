package recovery

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/photom"
	"lcforge/internal/sed"
)

// Supernova free-parameter vector layout.
var supernovaParams = []string{"t0", "z", "amplitude", "background"}

// Planet free-parameter vector layout.
var planetParams = []string{"T0", "period", "rprs", "impact"}

// Fixed heuristic seeds.
const (
	seedRedshift  = 0.5
	seedAmplitude = 3e-4
	seedPeriod    = 3.0
	seedRprs      = 0.05
	seedImpact    = 0.5
	seedT0Offset  = 0.25
	// backgroundQuantile is the robust floor estimate for the supernova
	// background guess.
	backgroundQuantile = 0.03
)

// fitProblem is one signal type's optimization setup: the free-parameter
// names, the heuristic initial guess, per-parameter bounds, and the model
// flux function over the free vector.
type fitProblem struct {
	names []string
	x0    []float64
	lower []float64
	upper []float64
	model func(x, time []float64) ([]float64, error)
}

// supernovaProblem fits {t0, z, amplitude, background} against the template
// evaluator in the instrument's standard bandpass.
func (s *Service) supernovaProblem(lc domaintypes.LightCurve) fitProblem {
	t := lc.Time
	tMin, tMax := t[0], t[len(t)-1]

	sorted := append([]float64(nil), lc.Flux...)
	sort.Float64s(sorted)

	fluxLo := sorted[0]
	fluxHi := sorted[len(sorted)-1]
	span := fluxHi - fluxLo
	if span == 0 {
		span = 1
	}

	x0 := []float64{
		stat.Quantile(0.5, stat.Empirical, t, nil),
		seedRedshift,
		seedAmplitude,
		stat.Quantile(backgroundQuantile, stat.Empirical, sorted, nil),
	}

	return fitProblem{
		names: supernovaParams,
		x0:    x0,
		lower: []float64{tMin, 0, 0, fluxLo - 10*span},
		upper: []float64{tMax, 3, 1, fluxHi + 10*span},
		model: func(x, time []float64) ([]float64, error) {
			params := domaintypes.Params{
				sed.ParamT0:        x[0],
				sed.ParamZ:         x[1],
				sed.ParamAmplitude: x[2],
			}
			flux, err := s.spectral.Evaluate(s.source, s.bandpass, params, time)
			if err != nil {
				return nil, err
			}
			scale := 1.0
			if s.bandpass == sed.BandpassKepler {
				scale = sed.KeplerEffectiveAreaCm2
			}
			for i := range flux {
				flux[i] = flux[i]*scale + x[3]
			}
			return flux, nil
		},
	}
}

// planetProblem fits {T0, period, rprs, impact}, seeding from fixed
// constants and refining with a box-least-squares search when available.
func (s *Service) planetProblem(lc domaintypes.LightCurve) fitProblem {
	t := lc.Time
	tMin, tMax := t[0], t[len(t)-1]
	span := tMax - tMin

	x0 := []float64{tMin + seedT0Offset, seedPeriod, seedRprs, seedImpact}
	if s.searcher != nil {
		if fit, err := s.searcher.Search(lc.Time, lc.Flux); err == nil && fit.Period > 0 {
			x0[1] = fit.Period
			if fit.Depth > 0 {
				x0[2] = math.Min(0.5, math.Sqrt(fit.Depth))
			}
			t0 := tMin + fit.Period*fit.MidPhase()
			if t0 >= tMin && t0 <= tMax {
				x0[0] = t0
			}
		}
	}

	return fitProblem{
		names: planetParams,
		x0:    x0,
		lower: []float64{tMin, 1e-2, 0, 0},
		upper: []float64{tMax, span, 0.5, 1},
		model: func(x, time []float64) ([]float64, error) {
			params := domaintypes.Params{
				photom.ParamZpt:    1.0,
				photom.ParamLd1:    0.1,
				photom.ParamLd2:    0.3,
				photom.ParamArs:    15,
				photom.ParamT0:     x[0],
				photom.ParamPeriod: x[1],
				photom.ParamRprs:   x[2],
				photom.ParamImpact: x[3],
			}
			return s.transit.Evaluate(params, time)
		},
	}
}

// inBounds reports whether x lies inside the problem's box, component-wise.
func (p fitProblem) inBounds(x []float64) bool {
	for i := range x {
		if x[i] < p.lower[i] || x[i] > p.upper[i] {
			return false
		}
	}
	return true
}
