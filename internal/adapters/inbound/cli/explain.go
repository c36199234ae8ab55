package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appconfig "github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/tui"
	"github.com/archlint/archlint/internal/domain"
)

func newExplainCmd() *cobra.Command {
	var (
		jsonOutput bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "explain [rule-id]",
		Short: "Describe the configured rules in plain language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.New().Load(path)
			if err != nil {
				return err
			}
			rules, err := cfg.CompiledRules()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				rules = filterRules(rules, args[0])
				if len(rules) == 0 {
					return fmt.Errorf("rule %q not found", args[0])
				}
			}

			if jsonOutput {
				return renderJSON(cmd, rules)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(rules))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}

func filterRules(rules []domain.Rule, id string) []domain.Rule {
	for _, r := range rules {
		if r.ID == id {
			return []domain.Rule{r}
		}
	}
	return nil
}
