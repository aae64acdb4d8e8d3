package domain

import (
	interfaces "lcforge/internal/domain/interfaces"
	types "lcforge/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SignalType          = types.SignalType
	Params              = types.Params
	LightCurve          = types.LightCurve
	Provenance          = types.Provenance
	SyntheticLightCurve = types.SyntheticLightCurve
	RecoveryResult      = types.RecoveryResult
	BoxFit              = types.BoxFit
	CampaignRun         = types.CampaignRun
	TrialResult         = types.TrialResult
)

// Signal type constants re-exported for compact imports.
const (
	SignalTransit   = types.SignalTransit
	SignalSupernova = types.SignalSupernova
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SignalModel       = interfaces.SignalModel
	TransitEvaluator  = interfaces.TransitEvaluator
	SpectralEvaluator = interfaces.SpectralEvaluator
	PeriodSearcher    = interfaces.PeriodSearcher
	Injector          = interfaces.Injector
	Recoverer         = interfaces.Recoverer
	CampaignStore     = interfaces.CampaignStore
)
