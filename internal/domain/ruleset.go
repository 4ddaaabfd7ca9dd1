package domain

import (
	"fmt"
	"path"
	"strings"
)

// Category is a named, ordered group of rules as declared in configuration.
type Category struct {
	Name  string `json:"name"`
	Rules []Rule `json:"rules"`
}

// RuleSet is the validated, immutable collection of rules for one run.
// Categories are fixed at construction; callers that need a different set
// build a new RuleSet.
type RuleSet struct {
	order []string
	rules map[string][]Rule
}

// NewRuleSet validates categories and returns a RuleSet that preserves their
// declaration order. Each rule's Category is set to its enclosing category
// and an empty Label defaults to DefaultLabel.
func NewRuleSet(categories []Category) (*RuleSet, error) {
	rs := &RuleSet{rules: make(map[string][]Rule, len(categories))}
	seen := make(map[string]string)

	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category name must not be empty")
		}
		if _, dup := rs.rules[name]; dup {
			return nil, fmt.Errorf("duplicate category %q", name)
		}

		rules := make([]Rule, 0, len(c.Rules))
		for i, r := range c.Rules {
			r.Category = name
			if err := validateRule(r); err != nil {
				return nil, fmt.Errorf("category %q rule %d: %w", name, i+1, err)
			}
			if r.IsPathRule() {
				r.Target = path.Clean(r.Target)
			}
			if prev, dup := seen[r.ID()]; dup {
				return nil, fmt.Errorf("category %q: %s %q already declared in category %q", name, r.Kind, r.Target, prev)
			}
			seen[r.ID()] = name
			if r.Label == "" {
				r.Label = DefaultLabel(r)
			}
			rules = append(rules, r)
		}

		rs.order = append(rs.order, name)
		rs.rules[name] = rules
	}

	return rs, nil
}

// AllCategories returns category names in declaration order.
func (rs *RuleSet) AllCategories() []string {
	return append([]string(nil), rs.order...)
}

// RulesFor returns the rules of a category in declaration order, or nil for
// an unknown category.
func (rs *RuleSet) RulesFor(category string) []Rule {
	rules, ok := rs.rules[category]
	if !ok {
		return nil
	}
	return append([]Rule{}, rules...)
}

// Len returns the total number of rules.
func (rs *RuleSet) Len() int {
	n := 0
	for _, rules := range rs.rules {
		n += len(rules)
	}
	return n
}

// Categories returns a copy of the rule set in its declared shape.
func (rs *RuleSet) Categories() []Category {
	out := make([]Category, 0, len(rs.order))
	for _, name := range rs.order {
		out = append(out, Category{Name: name, Rules: rs.RulesFor(name)})
	}
	return out
}

// DefaultLabel is the base name of a path target, or the key itself for a
// dependency rule.
func DefaultLabel(r Rule) string {
	if r.IsPathRule() {
		return path.Base(r.Target)
	}
	return r.Target
}

func validateRule(r Rule) error {
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("target must not be empty")
	}

	switch r.Kind {
	case KindFileExists, KindDirExists:
		if r.Scope != "" {
			return fmt.Errorf("scope %q is only valid on dependency rules", r.Scope)
		}
		if strings.Contains(r.Target, `\`) {
			return fmt.Errorf("path %q must use forward slashes", r.Target)
		}
		if path.IsAbs(r.Target) {
			return fmt.Errorf("path %q must be relative to the project root", r.Target)
		}
		if c := path.Clean(r.Target); c == ".." || strings.HasPrefix(c, "../") {
			return fmt.Errorf("path %q escapes the project root", r.Target)
		}
	case KindManifestKeyPresent:
		if r.Scope != ScopeRuntime && r.Scope != ScopeDev {
			return fmt.Errorf("unknown dependency scope %q (valid: runtime, dev)", r.Scope)
		}
	default:
		return fmt.Errorf("unknown rule kind %q (valid: file, dir, dependency)", r.Kind)
	}

	return nil
}
