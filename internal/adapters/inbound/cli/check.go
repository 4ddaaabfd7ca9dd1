package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/preflight/internal/adapters/outbound/config"
	"github.com/abdidvp/preflight/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/preflight/internal/adapters/outbound/manifest"
	"github.com/abdidvp/preflight/internal/adapters/outbound/probe"
	"github.com/abdidvp/preflight/internal/adapters/outbound/tui"
	"github.com/abdidvp/preflight/internal/application"
	"github.com/abdidvp/preflight/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		opts       runOptions
		jsonOutput bool
		noGuidance bool
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a project against its rule set",
		Long: "Check required files, directories and manifest dependencies of the project at path " +
			"(default: current directory) and print an itemized report.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return &domain.FatalConfigError{Source: "environment", Err: err}
			}
			opts.applyEnv(cmd, args, e)

			svc := newValidateService()
			plan, err := svc.Prepare(opts.path, application.PlanOptions{
				ConfigPath: opts.config,
				Preset:     opts.preset,
				Manifest:   opts.manifest,
			})
			if err != nil {
				return err
			}

			summary, err := svc.Run(cmd.Context(), application.Request{
				ProjectRoot:  plan.ProjectRoot,
				ManifestPath: plan.ManifestPath,
				RuleSet:      plan.RuleSet,
				Workers:      opts.workers,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderCheckJSON(cmd.OutOrStdout(), gitinfo.New(), plan, summary); err != nil {
					return err
				}
			} else {
				reporter := tui.NewReporter(useColor(cmd.OutOrStdout(), opts.noColor))
				fmt.Fprint(cmd.OutOrStdout(), reporter.Render(*summary))
				if !noGuidance {
					fmt.Fprint(cmd.OutOrStdout(), reporter.RenderGuidance(plan.Guidance))
				}
			}

			if !summary.OverallPass {
				sat, total := summary.Counts()
				return &domain.ValidationFailedError{Failed: total - sat, Total: total}
			}
			return nil
		},
	}

	opts.bindFlags(cmd)
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Number of rules evaluated concurrently")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")
	cmd.Flags().BoolVar(&noGuidance, "no-guidance", false, "Omit the follow-on guidance text")

	return cmd
}

func newValidateService() *application.ValidateService {
	return application.NewValidateService(
		config.New(),
		manifest.New(),
		func(root string) domain.PathProber { return probe.New(root) },
		logger,
	)
}

// checkReport is the JSON form of a run.
type checkReport struct {
	ProjectRoot string           `json:"project_root"`
	Manifest    string           `json:"manifest"`
	Revision    *domain.Revision `json:"revision,omitempty"`
	*domain.RunSummary
}

// renderCheckJSON writes the run as JSON. The revision is omitted when the
// project is not inside a git work tree.
func renderCheckJSON(w io.Writer, git domain.GitInfo, plan *application.Plan, summary *domain.RunSummary) error {
	report := checkReport{
		ProjectRoot: plan.ProjectRoot,
		Manifest:    plan.ManifestPath,
		RunSummary:  summary,
	}
	if rev, err := git.Revision(plan.ProjectRoot); err == nil {
		report.Revision = &rev
	} else {
		logger.Debug("no git revision", zap.String("root", plan.ProjectRoot), zap.Error(err))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// useColor reports whether w is an interactive terminal and color was not
// disabled.
func useColor(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
