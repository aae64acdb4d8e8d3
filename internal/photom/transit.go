package photom

import (
	"math"

	"lcforge/internal/domain"
	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
)

// Parameter names understood by the evaluator. Star-level parameters first,
// then the single planet's parameters.
const (
	ParamZpt    = "zpt"
	ParamLd1    = "ld1"
	ParamLd2    = "ld2"
	ParamLd3    = "ld3"
	ParamLd4    = "ld4"
	ParamRho    = "rho"
	ParamDil    = "dil"
	ParamPeriod = "period"
	ParamRprs   = "rprs"
	ParamT0     = "T0"
	ParamImpact = "impact"
	ParamArs    = "ars"
	ParamEcosw  = "ecosw"
	ParamEsinw  = "esinw"
	ParamOcc    = "occ"
)

const (
	gravCGS      = 6.674e-8 // cm^3 g^-1 s^-2
	secondsPerDay = 86400.0
)

// Evaluator computes transit light curves. The zero value is ready to use.
type Evaluator struct{}

// New returns a transit evaluator.
func New() *Evaluator { return &Evaluator{} }

// Evaluate returns normalized flux (about 1 outside transit, scaled by zpt)
// at each time. Missing optional parameters take neutral values; period and
// rprs are required and must be physical.
func (e *Evaluator) Evaluate(params domaintypes.Params, time []float64) ([]float64, error) {
	period := params[ParamPeriod]
	rprs := params[ParamRprs]
	if period <= 0 {
		return nil, &domain.InvalidParameterError{Name: ParamPeriod, Value: period, Reason: "must be positive"}
	}
	if rprs < 0 {
		return nil, &domain.InvalidParameterError{Name: ParamRprs, Value: rprs, Reason: "must be non-negative"}
	}

	zpt := paramOr(params, ParamZpt, 1.0)
	ld := [4]float64{params[ParamLd1], params[ParamLd2], params[ParamLd3], params[ParamLd4]}
	dil := params[ParamDil]
	t0 := params[ParamT0]
	impact := params[ParamImpact]
	ecosw := params[ParamEcosw]
	esinw := params[ParamEsinw]
	occPPM := params[ParamOcc]

	ars := params[ParamArs]
	if ars <= 0 {
		ars = arsFromDensity(paramOr(params, ParamRho, 1.5), period)
	}
	if impact > ars {
		return nil, &domain.InvalidParameterError{Name: ParamImpact, Value: impact, Reason: "exceeds a/R*, orbit never crosses the disk"}
	}

	ecc2 := ecosw*ecosw + esinw*esinw
	if ecc2 >= 1 {
		return nil, &domain.InvalidParameterError{Name: ParamEcosw, Value: math.Sqrt(ecc2), Reason: "eccentricity must be below 1"}
	}
	// Planet speed factor at conjunction; shortens or lengthens the
	// transit for eccentric orbits.
	speed := (1 + esinw) / math.Sqrt(1-ecc2)

	// Disk-averaged limb-darkened intensity for I(mu) = 1 - sum c_k (1-mu)^k.
	meanIntensity := 1 - ld[0]/3 - ld[1]/6 - ld[2]/10 - ld[3]/15

	flux := make([]float64, len(time))
	for i, t := range time {
		phase := math.Mod(t-t0, period) / period
		if phase < -0.5 {
			phase += 1
		} else if phase > 0.5 {
			phase -= 1
		}
		theta := 2 * math.Pi * phase

		var dip float64
		if math.Cos(theta) > 0 {
			// Primary transit side.
			z := projectedSeparation(theta*speed, ars, impact)
			obscured := occultUniform(z, rprs)
			if obscured > 0 {
				mu := 0.0
				if z < 1 {
					mu = math.Sqrt(1 - z*z)
				}
				local := 1 - ld[0]*(1-mu) - ld[1]*(1-mu)*(1-mu) -
					ld[2]*math.Pow(1-mu, 3) - ld[3]*math.Pow(1-mu, 4)
				dip = obscured * local / meanIntensity
			}
		} else if occPPM > 0 && rprs > 0 {
			// Secondary eclipse: fraction of the planet disk hidden
			// behind the star scales the configured depth.
			z := projectedSeparation((theta-math.Pi)*speed, ars, impact)
			hidden := occultUniform(z, rprs) / (rprs * rprs)
			dip = occPPM * 1e-6 * math.Min(hidden, 1)
		}

		flux[i] = zpt * (1 - (1-dil)*dip)
	}
	return flux, nil
}

// paramOr returns params[name] if present, else def.
func paramOr(p domaintypes.Params, name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

// arsFromDensity derives the scaled semi-major axis from the mean stellar
// density (cgs) and the orbital period (days) via Kepler's third law.
func arsFromDensity(rho, periodDays float64) float64 {
	p := periodDays * secondsPerDay
	return math.Cbrt(rho * gravCGS * p * p / (3 * math.Pi))
}

// projectedSeparation returns the planet-star center distance in stellar
// radii for orbital angle theta from conjunction.
func projectedSeparation(theta, ars, impact float64) float64 {
	s := ars * math.Sin(theta)
	c := impact * math.Cos(theta)
	return math.Sqrt(s*s + c*c)
}

// occultUniform returns the fraction of the stellar disk obscured by a
// planet of radius ratio p at normalized separation z (Mandel & Agol
// uniform-source lambda_e).
func occultUniform(z, p float64) float64 {
	switch {
	case p <= 0 || z >= 1+p:
		return 0
	case p >= 1 && z <= p-1:
		return 1
	case z <= 1-p:
		return p * p
	default:
		k0 := math.Acos((p*p + z*z - 1) / (2 * p * z))
		k1 := math.Acos((1 - p*p + z*z) / (2 * z))
		lens := 0.5 * math.Sqrt(math.Max(0, 4*z*z-(1+z*z-p*p)*(1+z*z-p*p)))
		return (p*p*k0 + k1 - lens) / math.Pi
	}
}

var _ interfaces.TransitEvaluator = (*Evaluator)(nil)
