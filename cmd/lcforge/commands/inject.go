package commands

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lcforge/internal/app"
	"lcforge/internal/campaign"
	"lcforge/internal/dist"
	domaintypes "lcforge/internal/domain/types"
)

// inject: sample one signal, add it to a light curve, write the result.
func injectCmd() *cobra.Command {
	var (
		inPath     string
		outPath    string
		signalType string
		seed       uint64
		source     string
		bandpass   string
		paramFlags []string
	)

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inject a single synthetic signal into a light curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadCurve(inPath)
			if err != nil {
				return err
			}

			params, err := parseParams(paramFlags)
			if err != nil {
				return err
			}

			ccfg := campaign.Config{
				SignalType: domaintypes.SignalType(signalType),
				Seed:       seed,
				Source:     source,
				Bandpass:   bandpass,
				Params:     params,
			}
			model, err := campaign.BuildModel(rand.NewPCG(seed, 0), ccfg)
			if err != nil {
				return err
			}

			synth, err := wiring.Injector.Inject(base, model)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return app.WriteCSV(out, synth.LightCurve)
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input light curve CSV (default: config base series)")
	cmd.Flags().StringVar(&outPath, "out", "", "output CSV path (default stdout)")
	cmd.Flags().StringVar(&signalType, "signal", "transit", "signal type: transit or supernova")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for sampled parameters")
	cmd.Flags().StringVar(&source, "source", "", "supernova source template")
	cmd.Flags().StringVar(&bandpass, "bandpass", "", "supernova bandpass")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "model parameter name=value (repeatable)")
	return cmd
}

func loadCurve(path string) (domaintypes.LightCurve, error) {
	if path != "" {
		return app.ReadCSV(path)
	}
	return cfg.BaseLightCurve()
}

func parseParams(flags []string) (map[string]dist.Value, error) {
	params := make(map[string]dist.Value, len(flags))
	for _, p := range flags {
		name, raw, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q: want name=value", p)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", p, err)
		}
		params[name] = dist.Literal(v)
	}
	return params, nil
}
