// Package aggregate folds per-rule results into category and run summaries.
// Every function here is pure: inputs are never mutated and no I/O happens.
package aggregate

import "github.com/abdidvp/preflight/internal/domain"

// Aggregate summarizes one category. A category without results is
// vacuously satisfied.
func Aggregate(category string, results []domain.Result) domain.CategorySummary {
	all := true
	for _, r := range results {
		if !r.Satisfied {
			all = false
			break
		}
	}

	return domain.CategorySummary{
		Category:     category,
		Results:      append([]domain.Result{}, results...),
		AllSatisfied: all,
	}
}

// AggregateAll combines category summaries, keeping their order. The run
// passes only if every category is fully satisfied.
func AggregateAll(summaries []domain.CategorySummary) domain.RunSummary {
	pass := true
	for _, s := range summaries {
		if !s.AllSatisfied {
			pass = false
			break
		}
	}

	return domain.RunSummary{
		Categories:  append([]domain.CategorySummary{}, summaries...),
		OverallPass: pass,
	}
}
