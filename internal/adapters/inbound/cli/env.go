package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// envConfig holds flag defaults taken from the environment. Flags set on the
// command line always win.
type envConfig struct {
	Path     string `env:"PREFLIGHT_PATH"`
	Manifest string `env:"PREFLIGHT_MANIFEST"`
	Config   string `env:"PREFLIGHT_CONFIG"`
	Preset   string `env:"PREFLIGHT_PRESET"`
	Workers  int    `env:"PREFLIGHT_WORKERS" envDefault:"1"`
	NoColor  string `env:"NO_COLOR"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// runOptions are the inputs shared by check, rules and the MCP tools.
type runOptions struct {
	path     string
	manifest string
	config   string
	preset   string
	workers  int
	noColor  bool
}

func (o *runOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.manifest, "manifest", "", "Manifest file (default from config, else package.json)")
	cmd.Flags().StringVar(&o.config, "config", "", "Config file (default <path>/.preflight.yaml)")
	cmd.Flags().StringVar(&o.preset, "preset", "", "Built-in rule preset to use")
}

// applyEnv fills options the user did not set explicitly.
func (o *runOptions) applyEnv(cmd *cobra.Command, args []string, e envConfig) {
	o.path = "."
	switch {
	case len(args) > 0:
		o.path = args[0]
	case e.Path != "":
		o.path = e.Path
	}

	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Lookup(flag) != nil && !cmd.Flags().Changed(flag) && v != "" {
			*dst = v
		}
	}
	set("manifest", &o.manifest, e.Manifest)
	set("config", &o.config, e.Config)
	set("preset", &o.preset, e.Preset)

	if f := cmd.Flags().Lookup("workers"); f != nil && !f.Changed {
		o.workers = e.Workers
	}
	if e.NoColor != "" {
		o.noColor = true
	}
}
