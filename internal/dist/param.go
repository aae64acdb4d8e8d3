package dist

import (
	"fmt"
	"math/rand/v2"
)

type valueKind uint8

const (
	kindUnset valueKind = iota
	kindLiteral
	kindSampled
)

// Value is a parameter value that is either a literal scalar or a
// distribution. Model constructors resolve each Value exactly once; a
// distribution-backed parameter is never resampled during the model's
// lifetime.
//
// The zero Value is "unset", which lets builders distinguish "caller passed
// 0.0" from "caller passed nothing, apply the default".
type Value struct {
	kind valueKind
	lit  float64
	dist Distribution
}

// Literal wraps a plain scalar.
func Literal(v float64) Value { return Value{kind: kindLiteral, lit: v} }

// Sampled wraps a distribution to be drawn from at model construction.
func Sampled(d Distribution) Value { return Value{kind: kindSampled, dist: d} }

// Set reports whether the value was explicitly provided.
func (v Value) Set() bool { return v.kind != kindUnset }

// Resolve returns the literal, or one draw from the distribution. An unset
// Value resolves to 0.
func (v Value) Resolve(src rand.Source) float64 {
	switch v.kind {
	case kindLiteral:
		return v.lit
	case kindSampled:
		return v.dist.Sample(src)
	default:
		return 0
	}
}

// ResolveOr is Resolve with a default for unset values.
func (v Value) ResolveOr(src rand.Source, def float64) float64 {
	if !v.Set() {
		return def
	}
	return v.Resolve(src)
}

// String describes the value for parameter summaries.
func (v Value) String() string {
	switch v.kind {
	case kindLiteral:
		return fmt.Sprintf("%g", v.lit)
	case kindSampled:
		return v.dist.String()
	default:
		return "unset"
	}
}
