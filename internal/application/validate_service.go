package application

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abdidvp/preflight/internal/domain"
	"github.com/abdidvp/preflight/internal/domain/aggregate"
	"github.com/abdidvp/preflight/internal/domain/evaluate"
)

// ProberFactory builds a PathProber rooted at a project directory.
type ProberFactory func(projectRoot string) domain.PathProber

// ValidateService orchestrates one validation run:
// load manifest -> evaluate rules -> aggregate.
// Rendering and exit codes are left to the caller.
type ValidateService struct {
	configs   domain.ConfigLoader
	manifests domain.ManifestLoader
	probers   ProberFactory
	logger    *zap.Logger
}

func NewValidateService(
	configs domain.ConfigLoader,
	manifests domain.ManifestLoader,
	probers ProberFactory,
	logger *zap.Logger,
) *ValidateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidateService{
		configs:   configs,
		manifests: manifests,
		probers:   probers,
		logger:    logger,
	}
}

// PlanOptions selects where rules come from.
type PlanOptions struct {
	ConfigPath string // explicit config file; empty means <root>/.preflight.yaml
	Preset     string // overrides the config's preset
	Manifest   string // overrides the config's manifest path
}

// Plan is the fully resolved input of a run.
type Plan struct {
	ProjectRoot  string
	ManifestPath string
	RuleSet      *domain.RuleSet
	Guidance     string
}

// Request is the input of Run.
type Request struct {
	ProjectRoot  string
	ManifestPath string
	RuleSet      *domain.RuleSet
	Workers      int
}

// Prepare loads configuration for projectRoot and resolves it into a Plan.
// Any failure is a *domain.FatalConfigError.
func (s *ValidateService) Prepare(projectRoot string, opts PlanOptions) (*Plan, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, &domain.FatalConfigError{Source: projectRoot, Err: fmt.Errorf("resolving path: %w", err)}
	}

	cfg, err := s.configs.Load(root, opts.ConfigPath)
	if err != nil {
		return nil, &domain.FatalConfigError{Source: "config", Err: err}
	}
	if opts.Preset != "" {
		cfg.Preset = opts.Preset
		if err := cfg.Validate(); err != nil {
			return nil, &domain.FatalConfigError{Source: "config", Err: err}
		}
	}
	if opts.Manifest != "" {
		cfg.Manifest = opts.Manifest
	}

	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, &domain.FatalConfigError{Source: "config", Err: err}
	}

	manifestPath := resolved.Manifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(root, filepath.FromSlash(manifestPath))
	}

	s.logger.Debug("plan resolved",
		zap.String("root", root),
		zap.String("manifest", manifestPath),
		zap.String("preset", cfg.Preset),
		zap.Int("categories", len(resolved.RuleSet.AllCategories())),
		zap.Int("rules", resolved.RuleSet.Len()),
	)

	return &Plan{
		ProjectRoot:  root,
		ManifestPath: manifestPath,
		RuleSet:      resolved.RuleSet,
		Guidance:     resolved.Guidance,
	}, nil
}

// Run loads the manifest once and evaluates every rule. The only error
// before evaluation is a manifest load failure; rule-level problems are
// reported as unsatisfied results in the summary.
func (s *ValidateService) Run(ctx context.Context, req Request) (*domain.RunSummary, error) {
	if req.RuleSet == nil {
		return nil, &domain.FatalConfigError{Source: "rules", Err: fmt.Errorf("no rule set")}
	}

	manifest, err := s.manifests.Load(req.ManifestPath)
	if err != nil {
		s.logger.Warn("manifest load failed", zap.String("path", req.ManifestPath), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("manifest loaded",
		zap.String("path", req.ManifestPath),
		zap.Int("dependencies", len(manifest.Dependencies.Entries)),
		zap.Int("dev_dependencies", len(manifest.DevDependencies.Entries)),
	)

	ev := evaluate.New(s.probers(req.ProjectRoot), manifest)
	results, err := ev.EvaluateAll(ctx, req.RuleSet, req.Workers)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.CategorySummary, 0, len(results))
	for _, cr := range results {
		for _, r := range cr.Results {
			if !r.Satisfied {
				s.logger.Debug("rule not satisfied",
					zap.String("category", cr.Category),
					zap.String("rule", r.Rule.ID()),
					zap.String("fault", string(r.Fault)),
					zap.String("detail", r.Detail),
				)
			}
		}
		summaries = append(summaries, aggregate.Aggregate(cr.Category, cr.Results))
	}

	summary := aggregate.AggregateAll(summaries)
	sat, total := summary.Counts()
	s.logger.Debug("validation finished",
		zap.Bool("pass", summary.OverallPass),
		zap.Int("satisfied", sat),
		zap.Int("total", total),
	)

	return &summary, nil
}
