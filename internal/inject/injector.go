package inject

import (
	"fmt"

	"go.uber.org/zap"

	"lcforge/internal/domain"
	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
)

// Service injects signal models into light curves.
type Service struct {
	log *zap.Logger
}

// New returns an injector. A nil logger disables telemetry.
func New(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log}
}

// Inject evaluates model on lc's time column and merges the result into the
// observed flux. Flux uncertainties are copied unchanged: injection does not
// alter measurement error. The returned curve carries the signal type, the
// resolved parameters, and the raw model flux as provenance.
func (s *Service) Inject(
	lc domaintypes.LightCurve,
	model interfaces.SignalModel,
) (domaintypes.SyntheticLightCurve, error) {
	if !lc.Aligned() {
		return domaintypes.SyntheticLightCurve{}, domain.ErrMisalignedLightCurve
	}

	signal, err := model.Evaluate(lc.Time)
	if err != nil {
		return domaintypes.SyntheticLightCurve{}, err
	}
	if len(signal) != lc.Len() {
		return domaintypes.SyntheticLightCurve{}, &domain.EvaluationError{
			Op:  "inject.Inject",
			Err: fmt.Errorf("model returned %d samples for %d cadences", len(signal), lc.Len()),
		}
	}

	merged := make([]float64, lc.Len())
	if model.Multiplicative() {
		for i := range merged {
			merged[i] = lc.Flux[i] * signal[i]
		}
	} else {
		for i := range merged {
			merged[i] = lc.Flux[i] + signal[i]
		}
	}

	var errs []float64
	if lc.FluxErr != nil {
		errs = make([]float64, len(lc.FluxErr))
		copy(errs, lc.FluxErr)
	}

	s.log.Debug("injected synthetic signal",
		zap.String("signal_type", model.Type().String()),
		zap.Bool("multiplicative", model.Multiplicative()),
		zap.Int("cadences", lc.Len()),
	)

	return domaintypes.SyntheticLightCurve{
		LightCurve: domaintypes.LightCurve{
			Time:    append([]float64(nil), lc.Time...),
			Flux:    merged,
			FluxErr: errs,
		},
		Provenance: domaintypes.Provenance{
			SignalType: model.Type(),
			Params:     model.Params(),
			Signal:     signal,
		},
	}, nil
}

var _ interfaces.Injector = (*Service)(nil)
