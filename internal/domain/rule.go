package domain

import "fmt"

// RuleKind identifies what a rule checks for.
type RuleKind string

const (
	KindFileExists         RuleKind = "file"
	KindDirExists          RuleKind = "dir"
	KindManifestKeyPresent RuleKind = "dependency"
)

// DependencyScope selects a manifest sub-table.
type DependencyScope string

const (
	ScopeRuntime DependencyScope = "runtime"
	ScopeDev     DependencyScope = "dev"
)

// Rule is a single declarative check. Path targets are slash-separated and
// relative to the project root; dependency targets are manifest keys.
type Rule struct {
	Kind     RuleKind        `json:"kind"`
	Target   string          `json:"target"`
	Scope    DependencyScope `json:"scope,omitempty"`
	Category string          `json:"category"`
	Label    string          `json:"label"`
}

// ID returns the rule's identity: kind, scope and target.
func (r Rule) ID() string {
	if r.Kind == KindManifestKeyPresent {
		return fmt.Sprintf("%s:%s:%s", r.Kind, r.Scope, r.Target)
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.Target)
}

// IsPathRule reports whether the rule probes the filesystem.
func (r Rule) IsPathRule() bool {
	return r.Kind == KindFileExists || r.Kind == KindDirExists
}

// FaultKind classifies why a rule was not satisfied.
type FaultKind string

const (
	FaultNone          FaultKind = ""
	FaultMissingTarget FaultKind = "missing_target"
	FaultKindMismatch  FaultKind = "kind_mismatch"
	FaultIO            FaultKind = "io_fault"
)

// Result is the outcome of evaluating one Rule.
type Result struct {
	Rule      Rule      `json:"rule"`
	Satisfied bool      `json:"satisfied"`
	Detail    string    `json:"detail,omitempty"`
	Fault     FaultKind `json:"fault,omitempty"`
}

// CategorySummary folds the results of one category.
type CategorySummary struct {
	Category     string   `json:"category"`
	Results      []Result `json:"results"`
	AllSatisfied bool     `json:"all_satisfied"`
}

// Counts returns the number of satisfied results and the total.
func (c CategorySummary) Counts() (satisfied, total int) {
	for _, r := range c.Results {
		if r.Satisfied {
			satisfied++
		}
	}
	return satisfied, len(c.Results)
}

// RunSummary is the aggregated outcome of one validation pass.
type RunSummary struct {
	Categories  []CategorySummary `json:"categories"`
	OverallPass bool              `json:"overall_pass"`
}

// Counts returns satisfied and total results across all categories.
func (s RunSummary) Counts() (satisfied, total int) {
	for _, c := range s.Categories {
		sat, tot := c.Counts()
		satisfied += sat
		total += tot
	}
	return satisfied, total
}

// Failed returns every unsatisfied result in report order.
func (s RunSummary) Failed() []Result {
	var failed []Result
	for _, c := range s.Categories {
		for _, r := range c.Results {
			if !r.Satisfied {
				failed = append(failed, r)
			}
		}
	}
	return failed
}
