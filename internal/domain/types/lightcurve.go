package types

// LightCurve is an ordered photometric time series. Time, Flux, and FluxErr
// are aligned by index; time is assumed strictly increasing but this is not
// enforced here.
type LightCurve struct {
	Time    []float64
	Flux    []float64
	FluxErr []float64
}

// Len returns the number of cadences in the light curve.
func (lc LightCurve) Len() int { return len(lc.Time) }

// Aligned reports whether the three columns have matching lengths. A nil
// FluxErr column counts as aligned; downstream fitting treats missing
// uncertainties as unit weights.
func (lc LightCurve) Aligned() bool {
	if len(lc.Flux) != len(lc.Time) {
		return false
	}
	return lc.FluxErr == nil || len(lc.FluxErr) == len(lc.Time)
}

// Provenance records how a synthetic light curve was made: the injected
// signal type, the resolved parameter mapping, and the raw model flux that
// was merged in.
type Provenance struct {
	SignalType SignalType
	Params     Params
	Signal     []float64
}

// SyntheticLightCurve is a light curve carrying injection provenance.
// Created only by the injector; treat as immutable after creation.
type SyntheticLightCurve struct {
	LightCurve
	Provenance Provenance
}
