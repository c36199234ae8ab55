package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appconfig "github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/tui"
	"github.com/archlint/archlint/internal/application"
	"github.com/archlint/archlint/internal/domain"
)

func newImpactCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		depth      int
		changed    []string
		path       string
	)

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Re-evaluate only the rules affected by changed files",
		Long:  "Propagate changed files through reverse import edges and evaluate only the rules whose verdict can depend on the affected modules. Changed files come from --changed, or from the git worktree when omitted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("depth") {
				cfg, err := appconfig.New().Load(path)
				if err != nil {
					return err
				}
				depth = cfg.ImpactDepth()
			}

			var out *application.ScanOutput
			var err error
			if len(changed) > 0 {
				out, err = newScanService().Impact(cmd.Context(), path, splitChanged(changed), depth)
			} else {
				out, err = newSnapshotService().ImpactFromWorktree(cmd.Context(), path, depth)
			}
			if err != nil {
				return fmt.Errorf("impact analysis failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, out.Report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderImpactSet(out.Report.Impact))
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
	cmd.Flags().IntVar(&depth, "depth", domain.UnboundedDepth, "Propagation depth over reverse imports (-1 = unbounded, default from config)")
	cmd.Flags().StringSliceVar(&changed, "changed", nil, "Changed files relative to the project root")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}

func splitChanged(values []string) []string {
	var files []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
	}
	return files
}
