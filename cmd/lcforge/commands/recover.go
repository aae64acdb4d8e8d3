package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	domaintypes "lcforge/internal/domain/types"
)

// recover: fit a signal model to a light curve and print the result.
func recoverCmd() *cobra.Command {
	var (
		inPath     string
		signalType string
		guessFlag  string
	)

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Fit a signal model to a light curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := loadCurve(inPath)
			if err != nil {
				return err
			}

			var guess []float64
			if guessFlag != "" {
				for _, raw := range strings.Split(guessFlag, ",") {
					v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
					if err != nil {
						return fmt.Errorf("bad --guess element %q: %w", raw, err)
					}
					guess = append(guess, v)
				}
			}

			res, err := wiring.Recoverer.Recover(
				cmd.Context(), lc, domaintypes.SignalType(signalType), guess)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(res.Params))
			for name := range res.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-12s %.6g\n", name, res.Params[name])
			}
			fmt.Printf("converged    %v (%s)\n", res.Converged, res.Status)
			fmt.Printf("objective    %.6g after %d evaluations\n", res.Objective, res.Evaluations)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input light curve CSV (default: config base series)")
	cmd.Flags().StringVar(&signalType, "signal", "transit", "signal type: transit or supernova")
	cmd.Flags().StringVar(&guessFlag, "guess", "", "comma-separated initial guess (default: heuristic)")
	return cmd
}
