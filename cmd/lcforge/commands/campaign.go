package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func campaignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "campaign",
		Short: "Run an injection-recovery campaign from the YAML config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("campaign requires a config file (-c)")
			}

			base, err := cfg.BaseLightCurve()
			if err != nil {
				return err
			}

			ccfg := cfg.CampaignConfig()
			names := make([]string, 0, len(ccfg.Params))
			for name := range ccfg.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-12s %s\n", name, ccfg.Params[name])
			}

			res, err := wiring.Runner.Run(cmd.Context(), base, ccfg)
			if err != nil {
				return err
			}

			if wiring.Store != nil {
				if err := wiring.Store.SaveRun(cmd.Context(), res.Run, res.Trials); err != nil {
					return err
				}
			}

			fmt.Printf("run %s: recovered %d of %d (%.1f%%)\n",
				res.Run.ID, res.Run.Recovered, res.Run.Trials, 100*res.Run.Fraction)
			for _, tr := range res.Trials {
				if tr.Err != "" {
					fmt.Printf("  trial %d failed: %s\n", tr.Index, tr.Err)
				}
			}
			return nil
		},
	}
}
