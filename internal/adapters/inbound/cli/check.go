package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlint/archlint/internal/adapters/outbound/tui"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate rules and judge the result against the baseline",
		Long:  "Run a full scan and partition violations into new, accepted, and resolved against the stored baseline. Without a baseline, every violation is new.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newCheckService().Check(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckReport(report))
			}

			if ciMode && report.Failed() {
				return fmt.Errorf("%d new blocking violations", report.Diff.NewBlockingCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 on new error-severity violations")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}
