package app

import (
	"go.uber.org/zap"

	"lcforge/internal/bls"
	"lcforge/internal/campaign"
	"lcforge/internal/domain/interfaces"
	"lcforge/internal/inject"
	"lcforge/internal/photom"
	"lcforge/internal/recovery"
	"lcforge/internal/sed"
	"lcforge/internal/signal"
	"lcforge/internal/store"
)

// Wire bundles the evaluators, services, and optional store for the CLI.
type Wire struct {
	Transit   interfaces.TransitEvaluator
	Spectral  interfaces.SpectralEvaluator
	Injector  interfaces.Injector
	Recoverer interfaces.Recoverer
	Runner    *campaign.Runner
	Store     interfaces.CampaignStore

	close func() error
}

// NewWire constructs the dependency graph from cfg. The store is only opened
// when cfg.Store.Path is set; Wire.Store is nil otherwise.
func NewWire(cfg *Config, log *zap.Logger) (*Wire, error) {
	if log == nil {
		log = zap.NewNop()
	}

	transit := photom.New()
	spectral := sed.New()
	searcher := bls.New()

	injector := inject.New(log)

	source := cfg.Campaign.Source
	if source == "" {
		source = signal.DefaultSource
	}
	bandpass := cfg.Campaign.Bandpass
	if bandpass == "" {
		bandpass = signal.DefaultBandpass
	}
	recoverer := recovery.New(transit, spectral,
		recovery.WithPeriodSearcher(searcher),
		recovery.WithLogger(log),
		recovery.WithTemplate(source, bandpass),
	)

	runner := campaign.NewRunner(injector, recoverer,
		campaign.WithObserver(campaign.NewZapObserver(log)),
		campaign.WithLogger(log),
	)

	w := &Wire{
		Transit:   transit,
		Spectral:  spectral,
		Injector:  injector,
		Recoverer: recoverer,
		Runner:    runner,
		close:     func() error { return nil },
	}

	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		cs, err := store.NewCampaignStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		w.Store = cs
		w.close = db.Close
	}

	return w, nil
}

// Close releases the results database, if one was opened.
func (w *Wire) Close() error { return w.close() }
