// Package recovery fits injected signal parameters back out of light curves.
//
// A recovery run is a single pass through BuildInitialGuess, Optimize, and
// ReturnResult: a signal-type heuristic (or caller-supplied vector) seeds a
// bounded Nelder-Mead minimization of the 0.5*chi-square objective, and the
// optimizer's terminal state is returned as-is. Non-convergence is a result
// status, not an error; evaluator failures abort the whole call.
package recovery
