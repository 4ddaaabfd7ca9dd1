package domain

import (
	"fmt"
	"strings"
)

// DefaultManifest is the manifest file used when neither config nor flags
// name one.
const DefaultManifest = "package.json"

// ProjectConfig holds project-level configuration loaded from .preflight.yaml.
type ProjectConfig struct {
	Preset     string         `yaml:"preset,omitempty"     json:"preset,omitempty"`
	Manifest   string         `yaml:"manifest,omitempty"   json:"manifest,omitempty"`
	Categories []CategorySpec `yaml:"categories,omitempty" json:"categories,omitempty"`
	Guidance   string         `yaml:"guidance,omitempty"   json:"guidance,omitempty"`
}

// CategorySpec is a category as written in configuration.
type CategorySpec struct {
	Name  string     `yaml:"name"  json:"name"`
	Rules []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec is a rule as written in configuration. Exactly one of File, Dir,
// Dependency or DevDependency must be set.
type RuleSpec struct {
	File          string `yaml:"file,omitempty"           json:"file,omitempty"`
	Dir           string `yaml:"dir,omitempty"            json:"dir,omitempty"`
	Dependency    string `yaml:"dependency,omitempty"     json:"dependency,omitempty"`
	DevDependency string `yaml:"dev_dependency,omitempty" json:"dev_dependency,omitempty"`
	Label         string `yaml:"label,omitempty"          json:"label,omitempty"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{Preset: DefaultPreset}
}

// ToRule converts s into a Rule. Validation of the resulting rule is
// left to NewRuleSet.
func (s RuleSpec) ToRule() (Rule, error) {
	var (
		set  int
		rule = Rule{Label: strings.TrimSpace(s.Label)}
	)
	if s.File != "" {
		set++
		rule.Kind, rule.Target = KindFileExists, s.File
	}
	if s.Dir != "" {
		set++
		rule.Kind, rule.Target = KindDirExists, s.Dir
	}
	if s.Dependency != "" {
		set++
		rule.Kind, rule.Target, rule.Scope = KindManifestKeyPresent, s.Dependency, ScopeRuntime
	}
	if s.DevDependency != "" {
		set++
		rule.Kind, rule.Target, rule.Scope = KindManifestKeyPresent, s.DevDependency, ScopeDev
	}

	switch set {
	case 0:
		return Rule{}, fmt.Errorf("rule must set one of file, dir, dependency, dev_dependency")
	case 1:
		return rule, nil
	default:
		return Rule{}, fmt.Errorf("rule sets %d targets (exactly one of file, dir, dependency, dev_dependency allowed)", set)
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Preset != "" {
		if _, ok := LookupPreset(c.Preset); !ok {
			return fmt.Errorf("unknown preset %q (valid: %s)", c.Preset, strings.Join(PresetNames(), ", "))
		}
	}

	if c.Preset == "" && len(c.Categories) == 0 {
		return fmt.Errorf("config declares no categories and no preset")
	}

	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("categories[%d]: name must not be empty", i)
		}
		for j, r := range cat.Rules {
			if _, err := r.ToRule(); err != nil {
				return fmt.Errorf("category %q rule %d: %w", cat.Name, j+1, err)
			}
		}
	}

	return nil
}

// Resolve merges the config over its preset and returns the effective
// categories, manifest path and guidance text. Explicit values win; explicit
// categories replace the preset's entirely.
func (c ProjectConfig) Resolve() (ResolvedConfig, error) {
	var resolved ResolvedConfig

	if c.Preset != "" {
		p, ok := LookupPreset(c.Preset)
		if !ok {
			return ResolvedConfig{}, fmt.Errorf("unknown preset %q", c.Preset)
		}
		resolved.Manifest = p.Manifest
		resolved.Guidance = p.Guidance
		resolved.Specs = p.Categories
	}

	if c.Manifest != "" {
		resolved.Manifest = c.Manifest
	}
	if resolved.Manifest == "" {
		resolved.Manifest = DefaultManifest
	}
	if c.Guidance != "" {
		resolved.Guidance = c.Guidance
	}
	if len(c.Categories) > 0 {
		resolved.Specs = c.Categories
	}

	categories := make([]Category, 0, len(resolved.Specs))
	for _, spec := range resolved.Specs {
		cat := Category{Name: spec.Name}
		for j, rs := range spec.Rules {
			r, err := rs.ToRule()
			if err != nil {
				return ResolvedConfig{}, fmt.Errorf("category %q rule %d: %w", spec.Name, j+1, err)
			}
			cat.Rules = append(cat.Rules, r)
		}
		categories = append(categories, cat)
	}

	rs, err := NewRuleSet(categories)
	if err != nil {
		return ResolvedConfig{}, err
	}
	resolved.RuleSet = rs

	return resolved, nil
}

// ResolvedConfig is a ProjectConfig after preset merging.
type ResolvedConfig struct {
	RuleSet  *RuleSet
	Specs    []CategorySpec
	Manifest string
	Guidance string
}
