package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlint/archlint/internal/adapters/outbound/tui"
)

func newScanCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		showCycles bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Index the project and evaluate all rules",
		Long:  "Walk the source tree, build the project index, and report every rule violation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newScanService().Scan(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if !showCycles {
				out.Report.Cycles = nil
			}
			if jsonOutput {
				if err := renderJSON(cmd, out.Report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScanReport(out.Report))
			}

			if ciMode && out.Report.BlockingCount() > 0 {
				return fmt.Errorf("%d blocking violations", out.Report.BlockingCount())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 on any error-severity violation")
	cmd.Flags().BoolVar(&showCycles, "cycles", false, "Report import cycles")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}
