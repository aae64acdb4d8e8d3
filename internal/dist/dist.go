package dist

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution draws scalar values from a fixed parametric distribution.
// Implementations are immutable; Sample has no side effect beyond consuming
// the supplied random source.
type Distribution interface {
	// Sample draws one value using src.
	Sample(src rand.Source) float64
	// Support returns the interval a density or indicator curve for this
	// distribution would span.
	Support() (lo, hi float64)
	fmt.Stringer
}

// Uniform draws uniformly from [Lb, Ub). Inverted or zero-width ranges are
// legal and simply degenerate; no validation is performed.
type Uniform struct {
	Lb float64
	Ub float64
}

// Sample draws one value from the uniform distribution.
func (u Uniform) Sample(src rand.Source) float64 {
	return distuv.Uniform{Min: u.Lb, Max: u.Ub, Src: src}.Rand()
}

// Support returns the distribution bounds.
func (u Uniform) Support() (float64, float64) { return u.Lb, u.Ub }

// String returns a compact description of the distribution.
func (u Uniform) String() string {
	return fmt.Sprintf("Uniform(lb=%g, ub=%g)", u.Lb, u.Ub)
}

// Gaussian draws from a normal distribution with the given mean and
// standard deviation. A zero Stddev degenerates to the mean.
type Gaussian struct {
	Mean   float64
	Stddev float64
}

// Sample draws one value from the Gaussian distribution.
func (g Gaussian) Sample(src rand.Source) float64 {
	return distuv.Normal{Mu: g.Mean, Sigma: g.Stddev, Src: src}.Rand()
}

// Support returns the three-sigma interval around the mean.
func (g Gaussian) Support() (float64, float64) {
	return g.Mean - 3*g.Stddev, g.Mean + 3*g.Stddev
}

// String returns a compact description of the distribution.
func (g Gaussian) String() string {
	return fmt.Sprintf("Gaussian(mean=%g, stddev=%g)", g.Mean, g.Stddev)
}
