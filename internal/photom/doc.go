// Package photom implements the built-in transit-photometry evaluator.
//
// It computes normalized flux for a limb-darkened star transited by a single
// planet, using the uniform-source occultation geometry with a small-planet
// limb-darkening correction. The injection and recovery core only depends on
// the TransitEvaluator contract, so this package is replaceable by any other
// photometry backend.
package photom
