package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "archlint",
		Short:         "Architecture rules for Python codebases",
		Long:          "Archlint indexes a Python source tree, evaluates import, naming, and layer rules against it, and tracks violations across runs with baselines and snapshots.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newBaselineCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newImpactCmd())
	cmd.AddCommand(newExplainCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
