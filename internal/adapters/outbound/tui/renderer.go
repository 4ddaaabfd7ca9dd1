package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/preflight/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

const (
	passMark = "✓"
	failMark = "✗"
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	dim     lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	hint    lipgloss.Style
}

// Reporter renders a RunSummary as text. With styling disabled the output
// contains no escape sequences, so equal summaries always render to equal
// bytes.
type Reporter struct {
	styled bool
	s      styles
}

// NewReporter creates a Reporter. styled enables lipgloss colors.
func NewReporter(styled bool) *Reporter {
	r := &Reporter{styled: styled}
	if styled {
		r.s = styles{
			title:   lipgloss.NewStyle().Bold(true).Foreground(fg),
			section: lipgloss.NewStyle().Bold(true).Foreground(accent),
			dim:     lipgloss.NewStyle().Foreground(dim),
			pass:    lipgloss.NewStyle().Foreground(success),
			fail:    lipgloss.NewStyle().Foreground(danger),
			warn:    lipgloss.NewStyle().Foreground(warning),
			hint:    lipgloss.NewStyle().Foreground(dim).Italic(true),
		}
	}
	return r
}

func (r *Reporter) paint(st lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return st.Render(s)
}

// Render renders every category in order, one line per result, followed by
// a summary line.
func (r *Reporter) Render(summary domain.RunSummary) string {
	var b strings.Builder

	b.WriteString(r.paint(r.s.title, "preflight"))
	b.WriteString(" ")
	b.WriteString(r.paint(r.s.dim, "project structure check"))
	b.WriteString("\n")

	for _, cat := range summary.Categories {
		r.renderCategory(&b, cat)
	}

	b.WriteString("\n")
	b.WriteString(r.summaryLine(summary))
	b.WriteString("\n")

	return b.String()
}

func (r *Reporter) renderCategory(b *strings.Builder, cat domain.CategorySummary) {
	sat, total := cat.Counts()
	countStyle := r.s.dim
	if !cat.AllSatisfied {
		countStyle = r.s.warn
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		r.paint(r.s.section, cat.Category),
		r.paint(countStyle, fmt.Sprintf("(%d/%d)", sat, total)),
	)

	if total == 0 {
		fmt.Fprintf(b, "    %s\n", r.paint(r.s.dim, "no rules"))
		return
	}

	for _, res := range cat.Results {
		b.WriteString("    ")
		b.WriteString(r.resultLine(res))
		b.WriteString("\n")
	}
}

func (r *Reporter) resultLine(res domain.Result) string {
	mark := r.paint(r.s.pass, passMark)
	if !res.Satisfied {
		mark = r.paint(r.s.fail, failMark)
	}

	line := mark + " " + res.Rule.Label
	if res.Rule.Label != res.Rule.Target {
		line += ": " + res.Rule.Target
	}
	if res.Rule.Kind == domain.KindManifestKeyPresent && !res.Satisfied && res.Detail == "" {
		line += " " + r.paint(r.s.dim, "(missing from "+scopeTable(res.Rule.Scope)+")")
	}
	if res.Detail != "" {
		line += " " + r.paint(r.s.dim, "("+res.Detail+")")
	}
	return line
}

func (r *Reporter) summaryLine(summary domain.RunSummary) string {
	sat, total := summary.Counts()
	if summary.OverallPass {
		return r.paint(r.s.pass, fmt.Sprintf("%s All checks passed: %d/%d rules satisfied.", passMark, sat, total))
	}
	return r.paint(r.s.fail, fmt.Sprintf("%s Some checks failed: %d/%d rules satisfied.", failMark, sat, total))
}

// RenderGuidance renders static follow-on text after the report. It takes
// nothing from the validation run.
func (r *Reporter) RenderGuidance(text string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	return "\n" + r.paint(r.s.hint, text) + "\n"
}

func scopeTable(scope domain.DependencyScope) string {
	if scope == domain.ScopeDev {
		return "devDependencies"
	}
	return "dependencies"
}
