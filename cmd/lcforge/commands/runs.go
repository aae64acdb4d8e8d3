package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// runs: inspect campaign runs stored in the results database.
func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List or inspect stored campaign runs",
	}
	cmd.AddCommand(runsListCmd(), runsShowCmd())
	return cmd
}

func runsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored campaign runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if wiring.Store == nil {
				return fmt.Errorf("no results database configured. use --db or store.path")
			}
			runs, err := wiring.Store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			for _, run := range runs {
				created := time.Unix(run.CreatedUTC, 0).UTC().Format(time.RFC3339)
				fmt.Printf("%s  %s  %-9s  %d/%d recovered (%.1f%%)\n",
					run.ID, created, run.SignalType, run.Recovered, run.Trials, 100*run.Fraction)
			}
			return nil
		},
	}
}

func runsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the per-trial outcomes of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if wiring.Store == nil {
				return fmt.Errorf("no results database configured. use --db or store.path")
			}
			run, trials, err := wiring.Store.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("run %s: %s, %d trials, tolerance %g, seed %d\n",
				run.ID, run.SignalType, run.Trials, run.Tolerance, run.Seed)
			for _, tr := range trials {
				switch {
				case tr.Err != "":
					fmt.Printf("  %3d  error: %s\n", tr.Index, tr.Err)
				case tr.Success:
					fmt.Printf("  %3d  recovered (objective %.4g)\n", tr.Index, tr.Objective)
				default:
					fmt.Printf("  %3d  missed (objective %.4g)\n", tr.Index, tr.Objective)
				}
			}
			return nil
		},
	}
}
