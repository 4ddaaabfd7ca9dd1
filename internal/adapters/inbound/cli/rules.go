package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/preflight/internal/adapters/outbound/tui"
	"github.com/abdidvp/preflight/internal/application"
	"github.com/abdidvp/preflight/internal/domain"
)

func newRulesCmd() *cobra.Command {
	var (
		opts       runOptions
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the effective rule set without checking anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return &domain.FatalConfigError{Source: "environment", Err: err}
			}
			opts.applyEnv(cmd, args, e)

			plan, err := newValidateService().Prepare(opts.path, application.PlanOptions{
				ConfigPath: opts.config,
				Preset:     opts.preset,
				Manifest:   opts.manifest,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Manifest   string            `json:"manifest"`
					Categories []domain.Category `json:"categories"`
				}{plan.ManifestPath, plan.RuleSet.Categories()})
			}

			reporter := tui.NewReporter(useColor(cmd.OutOrStdout(), opts.noColor))
			fmt.Fprint(cmd.OutOrStdout(), reporter.RenderRuleSet(plan.RuleSet, plan.ManifestPath))
			return nil
		},
	}

	opts.bindFlags(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the rule set as JSON")

	return cmd
}
