package commands

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"lcforge/internal/app"
)

var (
	configPath string
	dbPath     string
	verbose    bool

	cfg    *app.Config
	logger *zap.Logger
	wiring *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "lcforge",
		Short:         "Synthetic signal injection and recovery for light curves",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = app.LoadConfig(configPath)
				if err != nil {
					return err
				}
			} else {
				cfg = &app.Config{}
			}
			if dbPath != "" {
				cfg.Store.Path = dbPath
			}

			logger, err = newLogger(verbose)
			if err != nil {
				return err
			}

			wiring, err = app.NewWire(cfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wiring != nil {
				if err := wiring.Close(); err != nil {
					return err
				}
			}
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "results database path (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(campaignCmd(), injectCmd(), recoverCmd(), runsCmd())
	return root.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}
