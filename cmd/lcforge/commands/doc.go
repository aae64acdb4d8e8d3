// Package commands defines the lcforge CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - campaign  Run an injection-recovery campaign from a YAML config
//   - inject    Inject a single synthetic signal into a light curve
//   - recover   Fit a signal model to a light curve
//   - runs      List or inspect stored campaign runs
//
// # Implementation
//
// The root command loads the YAML config and builds a dependency graph
// (evaluators, injector, recoverer, campaign runner, optional results store)
// before any subcommand runs, so handlers share one wired app context.
package commands
