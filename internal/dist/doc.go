// Package dist provides the parameter distributions used to draw synthetic
// signal parameters, and the Value sum type that lets every model parameter
// be either a literal scalar or a distribution resolved once at model
// construction.
//
// Sampling always consumes an explicit rand.Source so campaign runs are
// reproducible and trials can use independent streams.
package dist
