package campaign

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lcforge/internal/dist"
	"lcforge/internal/domain"
	"lcforge/internal/domain/interfaces"
	domaintypes "lcforge/internal/domain/types"
	"lcforge/internal/signal"
)

// Config describes one campaign.
type Config struct {
	// SignalType selects the model variant injected each trial.
	SignalType domaintypes.SignalType
	// Trials is the number of independent injection-recovery trials.
	Trials int
	// Tolerance is the per-parameter relative recovery tolerance: a
	// parameter passes when |recovered - injected| < Tolerance*|injected|
	// (absolute comparison when the injected value is zero).
	Tolerance float64
	// Seed feeds the per-trial random streams.
	Seed uint64
	// Workers bounds the trial worker pool; values below 2 run serially.
	Workers int
	// Source and Bandpass configure supernova trials; ignored for transits.
	Source   string
	Bandpass string
	// Params maps parameter names to literals or distributions sampled
	// fresh each trial. Unnamed parameters take the model defaults.
	Params map[string]dist.Value
}

// Result is a finished campaign: the summary row plus every trial outcome.
type Result struct {
	Run    domaintypes.CampaignRun
	Trials []domaintypes.TrialResult
}

// Observer receives per-trial telemetry as trials finish. Implementations
// must be safe for concurrent use when Workers > 1.
type Observer interface {
	Trial(domaintypes.TrialResult)
}

type nopObserver struct{}

func (nopObserver) Trial(domaintypes.TrialResult) {}

// zapObserver logs trial outcomes through a structured logger.
type zapObserver struct {
	log *zap.Logger
}

// NewZapObserver returns an Observer that logs each trial at debug level.
func NewZapObserver(log *zap.Logger) Observer { return zapObserver{log: log} }

func (o zapObserver) Trial(tr domaintypes.TrialResult) {
	o.log.Debug("trial finished",
		zap.Int("trial", tr.Index),
		zap.Bool("recovered", tr.Success),
		zap.Bool("converged", tr.Converged),
		zap.Float64("objective", tr.Objective),
		zap.String("error", tr.Err),
	)
}

// Runner executes campaigns against fixed injector and recoverer services.
type Runner struct {
	injector  interfaces.Injector
	recoverer interfaces.Recoverer
	observer  Observer
	log       *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver replaces the default no-op trial observer.
func WithObserver(o Observer) Option { return func(r *Runner) { r.observer = o } }

// WithLogger attaches a structured logger for campaign telemetry.
func WithLogger(log *zap.Logger) Option { return func(r *Runner) { r.log = log } }

// NewRunner returns a campaign runner.
func NewRunner(injector interfaces.Injector, recoverer interfaces.Recoverer, opts ...Option) *Runner {
	r := &Runner{
		injector:  injector,
		recoverer: recoverer,
		observer:  nopObserver{},
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes cfg.Trials independent trials against the shared base light
// curve and returns the recovered fraction. The base curve is read-only;
// every trial gets its own random stream derived from the campaign seed, so
// results do not depend on worker scheduling.
func (r *Runner) Run(ctx context.Context, base domaintypes.LightCurve, cfg Config) (Result, error) {
	if cfg.SignalType != domaintypes.SignalTransit && cfg.SignalType != domaintypes.SignalSupernova {
		return Result{}, &domain.UnsupportedSignalTypeError{SignalType: cfg.SignalType}
	}
	if cfg.Trials <= 0 {
		return Result{}, &domain.InvalidParameterError{
			Name: "trials", Value: float64(cfg.Trials), Reason: "must be positive",
		}
	}
	if cfg.Tolerance <= 0 {
		return Result{}, &domain.InvalidParameterError{
			Name: "tolerance", Value: cfg.Tolerance, Reason: "must be positive",
		}
	}
	if !base.Aligned() || base.Len() == 0 {
		return Result{}, domain.ErrMisalignedLightCurve
	}

	trials := make([]domaintypes.TrialResult, cfg.Trials)

	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := 0; i < cfg.Trials; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			trials[i] = r.trial(gctx, base, cfg, i)
			r.observer.Trial(trials[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	recovered := 0
	for _, tr := range trials {
		if tr.Success {
			recovered++
		}
	}

	run := domaintypes.CampaignRun{
		ID:         uuid.NewString(),
		SignalType: cfg.SignalType,
		Trials:     cfg.Trials,
		Tolerance:  cfg.Tolerance,
		Seed:       cfg.Seed,
		Workers:    workers,
		Recovered:  recovered,
		Fraction:   float64(recovered) / float64(cfg.Trials),
		CreatedUTC: time.Now().Unix(),
	}
	r.log.Info("campaign finished",
		zap.String("run_id", run.ID),
		zap.String("signal_type", run.SignalType.String()),
		zap.Int("trials", run.Trials),
		zap.Int("recovered", run.Recovered),
		zap.Float64("fraction", run.Fraction),
	)
	return Result{Run: run, Trials: trials}, nil
}

// trial executes one sample-inject-recover-score pass.
func (r *Runner) trial(ctx context.Context, base domaintypes.LightCurve, cfg Config, index int) domaintypes.TrialResult {
	tr := domaintypes.TrialResult{Index: index}

	// Offset the stream index so trial 0 does not collide with other
	// consumers seeded (Seed, 0).
	src := rand.NewPCG(cfg.Seed, uint64(index)+1)

	model, err := BuildModel(src, cfg)
	if err != nil {
		tr.Err = err.Error()
		return tr
	}
	tr.Injected = model.Params()

	synth, err := r.injector.Inject(base, model)
	if err != nil {
		tr.Err = err.Error()
		return tr
	}

	res, err := r.recoverer.Recover(ctx, synth.LightCurve, cfg.SignalType, nil)
	if err != nil {
		tr.Err = err.Error()
		return tr
	}
	tr.Recovered = res.Params
	tr.Objective = res.Objective
	tr.Converged = res.Converged
	tr.Success = withinTolerance(tr.Injected, tr.Recovered, cfg.Tolerance)
	return tr
}

// BuildModel constructs a fresh signal model from the campaign parameter
// specs, resolving every distribution against the trial's random stream.
func BuildModel(src rand.Source, cfg Config) (interfaces.SignalModel, error) {
	switch cfg.SignalType {
	case domaintypes.SignalTransit:
		return signal.NewTransitBuilder(src, nil).
			Star(signal.StarParams{
				Zpt: cfg.Params["zpt"],
				Ld1: cfg.Params["ld1"],
				Ld2: cfg.Params["ld2"],
				Ld3: cfg.Params["ld3"],
				Ld4: cfg.Params["ld4"],
				Rho: cfg.Params["rho"],
				Dil: cfg.Params["dil"],
			}).
			Planet(signal.PlanetParams{
				Period: cfg.Params["period"],
				Rprs:   cfg.Params["rprs"],
				T0:     cfg.Params["T0"],
				Impact: cfg.Params["impact"],
				Ars:    cfg.Params["ars"],
				Ecosw:  cfg.Params["ecosw"],
				Esinw:  cfg.Params["esinw"],
				Occ:    cfg.Params["occ"],
			}).
			Build()
	case domaintypes.SignalSupernova:
		extra := make(map[string]dist.Value)
		for name, v := range cfg.Params {
			if name == "t0" || name == "z" {
				continue
			}
			extra[name] = v
		}
		return signal.NewSupernova(src, nil, signal.SupernovaConfig{
			T0:       cfg.Params["t0"],
			Z:        cfg.Params["z"],
			Source:   cfg.Source,
			Bandpass: cfg.Bandpass,
			Extra:    extra,
		})
	default:
		return nil, &domain.UnsupportedSignalTypeError{SignalType: cfg.SignalType}
	}
}

// withinTolerance checks every recovered parameter that has an injected
// counterpart. All must pass for the trial to count as recovered.
func withinTolerance(injected, recovered domaintypes.Params, tol float64) bool {
	for name, rec := range recovered {
		inj, ok := injected[name]
		if !ok {
			// Nuisance parameters like the fitted background have no
			// injected counterpart and are not scored.
			continue
		}
		if inj == 0 {
			if math.Abs(rec) >= tol {
				return false
			}
			continue
		}
		if math.Abs(rec-inj) >= tol*math.Abs(inj) {
			return false
		}
	}
	return true
}
