package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/preflight/internal/domain"
)

// RenderRuleSet lists categories and their rules without evaluating them.
func (r *Reporter) RenderRuleSet(rs *domain.RuleSet, manifest string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		r.paint(r.s.title, "preflight rules"),
		r.paint(r.s.dim, fmt.Sprintf("(%d rules, manifest %s)", rs.Len(), manifest)),
	)

	for _, name := range rs.AllCategories() {
		rules := rs.RulesFor(name)
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", r.paint(r.s.section, name), r.paint(r.s.dim, fmt.Sprintf("(%d)", len(rules))))
		for _, rule := range rules {
			fmt.Fprintf(&b, "    %-4s %s", kindTag(rule), rule.Target)
			if rule.Label != rule.Target && rule.Label != domain.DefaultLabel(rule) {
				b.WriteString("  " + r.paint(r.s.dim, rule.Label))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func kindTag(rule domain.Rule) string {
	switch rule.Kind {
	case domain.KindFileExists:
		return "file"
	case domain.KindDirExists:
		return "dir"
	default:
		if rule.Scope == domain.ScopeDev {
			return "dev"
		}
		return "dep"
	}
}
