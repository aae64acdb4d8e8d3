package bls

import (
	"errors"
	"math"

	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"

	"gonum.org/v1/gonum/stat"
)

// Searcher runs a grid box-least-squares search. The zero value is invalid;
// use New.
type Searcher struct {
	nPeriods    int
	nBins       int
	maxDuration float64 // in-transit fraction of the period, upper limit
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithPeriodGrid sets the number of trial periods.
func WithPeriodGrid(n int) Option { return func(s *Searcher) { s.nPeriods = n } }

// WithBins sets the number of phase bins per trial period.
func WithBins(n int) Option { return func(s *Searcher) { s.nBins = n } }

// New returns a Searcher with sensible defaults for short photometric series.
func New(opts ...Option) *Searcher {
	s := &Searcher{
		nPeriods:    600,
		nBins:       200,
		maxDuration: 0.2,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search scans trial periods between twice the median cadence and half the
// observation span, folding the flux and fitting a box at every phase. It
// returns the strongest candidate.
func (s *Searcher) Search(time, flux []float64) (domaintypes.BoxFit, error) {
	if len(time) != len(flux) {
		return domaintypes.BoxFit{}, errors.New("bls: time and flux lengths differ")
	}
	if len(time) < 8 {
		return domaintypes.BoxFit{}, errors.New("bls: series too short to fold")
	}

	span := time[len(time)-1] - time[0]
	if span <= 0 {
		return domaintypes.BoxFit{}, errors.New("bls: non-increasing time column")
	}
	minPeriod := 2 * span / float64(len(time)-1)
	maxPeriod := span / 2
	if maxPeriod <= minPeriod {
		maxPeriod = span
	}

	level := stat.Mean(flux, nil)

	var best domaintypes.BoxFit
	for i := 0; i < s.nPeriods; i++ {
		// Log-spaced grid: short periods need finer absolute steps.
		frac := float64(i) / float64(s.nPeriods-1)
		period := minPeriod * math.Exp(frac*math.Log(maxPeriod/minPeriod))

		fit, ok := s.foldAndFit(time, flux, level, period)
		if ok && fit.Power > best.Power {
			best = fit
		}
	}
	if best.Period == 0 {
		return domaintypes.BoxFit{}, errors.New("bls: no box candidate found")
	}
	return best, nil
}

// foldAndFit folds the series at period, bins it in phase, and finds the
// contiguous bin run that maximizes the box detection power.
func (s *Searcher) foldAndFit(time, flux []float64, level, period float64) (domaintypes.BoxFit, bool) {
	sums := make([]float64, s.nBins)
	counts := make([]int, s.nBins)
	for i, t := range time {
		phase := math.Mod(t-time[0], period) / period
		bin := int(phase * float64(s.nBins))
		if bin == s.nBins {
			bin = 0
		}
		sums[bin] += flux[i]
		counts[bin]++
	}

	maxDur := int(s.maxDuration * float64(s.nBins))
	if maxDur < 1 {
		maxDur = 1
	}

	var best domaintypes.BoxFit
	found := false
	for start := 0; start < s.nBins; start++ {
		var inSum float64
		var inCount int
		for d := 0; d < maxDur; d++ {
			bin := (start + d) % s.nBins
			inSum += sums[bin]
			inCount += counts[bin]
			if inCount == 0 {
				continue
			}
			n := len(time)
			outCount := n - inCount
			if outCount == 0 {
				continue
			}
			depth := level - inSum/float64(inCount)
			if depth <= 0 {
				continue
			}
			// Weighted box statistic: deep boxes covering a solid
			// share of points win over single-point outliers.
			power := depth * depth * float64(inCount) * float64(outCount) / float64(n)
			if power > best.Power {
				best = domaintypes.BoxFit{
					Period:   period,
					Depth:    depth,
					Power:    power,
					NBins:    s.nBins,
					StartBin: start,
					EndBin:   (start + d) % s.nBins,
				}
				found = true
			}
		}
	}
	return best, found
}

var _ interfaces.PeriodSearcher = (*Searcher)(nil)
