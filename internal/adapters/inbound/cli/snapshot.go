package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlint/archlint/internal/adapters/outbound/tui"
)

func newSnapshotCmd() *cobra.Command {
	var (
		jsonOutput bool
		diff       bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Persist the project index, or diff against the stored one",
		Long:  "Write the current project index to .archlint/snapshot.json with git provenance. With --diff, compare the stored snapshot against the current tree instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newSnapshotService()

			if diff {
				d, err := svc.Diff(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("snapshot diff failed: %w", err)
				}
				if jsonOutput {
					return renderJSON(cmd, d)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSnapshotDiff(d))
				return nil
			}

			snap, err := svc.Write(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("snapshot failed: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, snap)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot saved: %d modules, %d imports (index %.12s)\n",
				len(snap.Modules), len(snap.Edges), snap.IndexChecksum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&diff, "diff", false, "Diff the stored snapshot against the current tree")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}
