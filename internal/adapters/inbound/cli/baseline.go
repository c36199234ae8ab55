package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the accepted-violation baseline",
	}
	cmd.AddCommand(newBaselineSaveCmd())
	return cmd
}

func newBaselineSaveCmd() *cobra.Command {
	var (
		jsonOutput bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Accept the current violations as the baseline",
		Long:  "Run a full scan and store every current violation signature. Later checks fail only on violations not in this set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseline, report, err := newBaselineService().Save(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("baseline save failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, baseline)
			}
			total := 0
			for _, sigs := range baseline.Accepted {
				total += len(sigs)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline saved: %d accepted violations across %d rules (index %.12s)\n",
				total, len(baseline.Accepted), report.IndexChecksum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}
