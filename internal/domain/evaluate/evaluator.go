package evaluate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/preflight/internal/domain"
)

// Evaluator checks rules against a project's filesystem and manifest. It
// never returns an error for a single rule: every failure becomes an
// unsatisfied Result.
type Evaluator struct {
	prober   domain.PathProber
	manifest *domain.Manifest
}

func New(prober domain.PathProber, manifest *domain.Manifest) *Evaluator {
	return &Evaluator{prober: prober, manifest: manifest}
}

// Evaluate produces the Result for one rule.
func (e *Evaluator) Evaluate(rule domain.Rule) (res domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = fault(rule, domain.FaultIO, fmt.Sprintf("check aborted: %v", r))
		}
	}()

	switch rule.Kind {
	case domain.KindFileExists:
		return e.evaluatePath(rule, domain.EntryFile)
	case domain.KindDirExists:
		return e.evaluatePath(rule, domain.EntryDir)
	case domain.KindManifestKeyPresent:
		return e.evaluateDependency(rule)
	default:
		return fault(rule, domain.FaultIO, fmt.Sprintf("unknown rule kind %q", rule.Kind))
	}
}

func (e *Evaluator) evaluatePath(rule domain.Rule, want domain.EntryKind) domain.Result {
	if e.prober == nil {
		return fault(rule, domain.FaultIO, "no filesystem to probe")
	}

	got, err := e.prober.Probe(rule.Target)
	switch {
	case err != nil:
		return fault(rule, domain.FaultIO, err.Error())
	case got == domain.EntryAbsent:
		return fault(rule, domain.FaultMissingTarget, "not found")
	case got != want:
		return fault(rule, domain.FaultKindMismatch, fmt.Sprintf("expected %s, found %s", want, got))
	}

	return domain.Result{Rule: rule, Satisfied: true}
}

func (e *Evaluator) evaluateDependency(rule domain.Rule) domain.Result {
	if e.manifest == nil {
		return fault(rule, domain.FaultIO, "no manifest loaded")
	}

	version, ok, err := e.manifest.Lookup(rule.Scope, rule.Target)
	if err != nil {
		return fault(rule, domain.FaultIO, err.Error())
	}
	if !ok {
		return domain.Result{Rule: rule, Fault: domain.FaultMissingTarget}
	}

	return domain.Result{Rule: rule, Satisfied: true, Detail: version}
}

func fault(rule domain.Rule, kind domain.FaultKind, detail string) domain.Result {
	return domain.Result{Rule: rule, Fault: kind, Detail: detail}
}

// CategoryResults holds the results of one category in rule order.
type CategoryResults struct {
	Category string
	Results  []domain.Result
}

// EvaluateAll evaluates every rule of rs, categories in AllCategories order
// and rules in declaration order. With workers > 1, rules are evaluated
// concurrently and merged back by index, so the output is the same as a
// sequential run. A done context stops new evaluations and is reported as
// an error once in-flight ones finish.
func (e *Evaluator) EvaluateAll(ctx context.Context, rs *domain.RuleSet, workers int) ([]CategoryResults, error) {
	categories := rs.AllCategories()
	out := make([]CategoryResults, len(categories))

	g := new(errgroup.Group)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, name := range categories {
		rules := rs.RulesFor(name)
		out[i] = CategoryResults{Category: name, Results: make([]domain.Result, len(rules))}

		for j, rule := range rules {
			if ctx.Err() != nil {
				break
			}
			results := out[i].Results
			g.Go(func() error {
				results[j] = e.Evaluate(rule)
				return nil
			})
		}
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}
	return out, nil
}
