package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/preflight/internal/adapters/outbound/config"
	"github.com/abdidvp/preflight/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		presetName string
		expand     bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print a starter " + config.FileName,
		Long: "Print a " + config.FileName + " for a built-in preset to stdout. " +
			"With --expand the preset's rules are written out so they can be edited. " +
			"Nothing is written to the project; redirect the output to create the file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := generateConfig(presetName, expand)
			if err != nil {
				return &domain.FatalConfigError{Source: "init", Err: err}
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", domain.DefaultPreset,
		"Preset to start from ("+strings.Join(domain.PresetNames(), ", ")+")")
	cmd.Flags().BoolVar(&expand, "expand", false, "Write out the preset's categories and rules")

	return cmd
}

func generateConfig(presetName string, expand bool) (string, error) {
	p, ok := domain.LookupPreset(presetName)
	if !ok {
		return "", fmt.Errorf("unknown preset %q (valid: %s)", presetName, strings.Join(domain.PresetNames(), ", "))
	}

	cfg := domain.ProjectConfig{Preset: p.Name}
	if expand {
		cfg = domain.ProjectConfig{
			Manifest:   p.Manifest,
			Categories: p.Categories,
			Guidance:   p.Guidance,
		}
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	header := fmt.Sprintf("# preflight configuration (%s: %s)\n", p.Name, p.Description)
	return header + string(data), nil
}
