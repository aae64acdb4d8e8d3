// Package bls implements a box-least-squares periodogram search for
// periodic box-shaped dips in a flux series. It exists solely to seed the
// planet recovery's initial guess with a period, depth, and mid-transit
// estimate; it is not a general transit search pipeline.
package bls
