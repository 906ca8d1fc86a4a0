package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/confmat/internal/metrics"
)

// FormatMarkdownReport renders entries as a GitHub-flavored markdown
// report suitable for a PR comment.
func FormatMarkdownReport(entries []Entry, opts Options) string {
	digits := opts.digits()
	var b strings.Builder

	b.WriteString(fmt.Sprintf("## 📊 %s\n\n", opts.title()))

	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
		}
	}
	statusIcon := "✅ Computed"
	if failed > 0 {
		statusIcon = fmt.Sprintf("❌ %d of %d failed", failed, len(entries))
	}
	b.WriteString(fmt.Sprintf("**Status:** %s | **Matrices:** %d\n\n", statusIcon, len(entries)))

	b.WriteString("| Matrix | TP | TN | FP | FN |")
	for _, name := range metrics.MetricNames {
		b.WriteString(fmt.Sprintf(" %s |", metricLabels[name]))
	}
	b.WriteString(" Rating |\n")
	b.WriteString("|--------|----|----|----|----|")
	for range metrics.MetricNames {
		b.WriteString("------|")
	}
	b.WriteString("--------|\n")

	for _, e := range entries {
		counts := e.Counts
		if e.Result != nil {
			counts = e.Result.Counts
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |", escapeCell(e.Name),
			formatCount(counts.TP), formatCount(counts.TN), formatCount(counts.FP), formatCount(counts.FN)))

		if e.Err != nil {
			for range metrics.MetricNames {
				b.WriteString(" - |")
			}
			b.WriteString(" ❌ |\n")
			continue
		}

		for _, name := range metrics.MetricNames {
			v, _ := e.Result.Value(name)
			cell := formatRatio(v, digits)
			if substituted(e.Result, name) {
				cell += " ⚠️"
			}
			b.WriteString(fmt.Sprintf(" %s |", cell))
		}
		b.WriteString(fmt.Sprintf(" %s |\n", RateFScore(e.Result)))
	}
	b.WriteString("\n")

	if s := summaryOf(entries); opts.Summary && s != nil {
		b.WriteString(fmt.Sprintf("### Macro Average (%d matrices)\n\n", s.Count))
		b.WriteString("| Metric | Mean | σ | Defined |\n")
		b.WriteString("|--------|------|---|---------|\n")
		for _, name := range metrics.MetricNames {
			m := s.Metrics[name]
			mean := "undefined"
			if m.Defined > 0 {
				mean = formatRatio(m.Mean, digits)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n", metricLabels[name], mean, formatRatio(m.StdDev, digits), m.Defined))
		}
		b.WriteString("\n")
	}

	var diags []string
	for _, e := range entries {
		if e.Result == nil {
			continue
		}
		for _, d := range e.Result.Diagnostics {
			diags = append(diags, fmt.Sprintf("- **%s**: %s", escapeCell(e.Name), d.Message))
		}
	}
	if len(diags) > 0 {
		b.WriteString("### ⚠️ Diagnostics\n\n")
		b.WriteString(strings.Join(diags, "\n"))
		b.WriteString("\n\n")
	}

	if failed > 0 {
		b.WriteString("### Failed Matrices\n\n")
		for _, e := range entries {
			if e.Err != nil {
				b.WriteString(fmt.Sprintf("- **%s**: %v\n", escapeCell(e.Name), e.Err))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
