package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/confmat/internal/metrics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatTable renders entries as an aligned plain-text table. A "*"
// marks a value that was substituted because its ratio was undefined.
func FormatTable(entries []Entry, opts Options) string {
	digits := opts.digits()

	header := []string{"Name", "TP", "TN", "FP", "FN"}
	for _, name := range metrics.MetricNames {
		header = append(header, metricLabels[name])
	}

	rows := [][]string{header}
	var errs []string
	var notes []string
	for _, e := range entries {
		counts := e.Counts
		if e.Result != nil {
			counts = e.Result.Counts
		}
		row := []string{e.Name, formatCount(counts.TP), formatCount(counts.TN), formatCount(counts.FP), formatCount(counts.FN)}

		if e.Err != nil {
			for range metrics.MetricNames {
				row = append(row, "-")
			}
			errs = append(errs, fmt.Sprintf("  %s: %v", e.Name, e.Err))
			rows = append(rows, row)
			continue
		}

		for _, name := range metrics.MetricNames {
			v, _ := e.Result.Value(name)
			cell := formatRatio(v, digits)
			if substituted(e.Result, name) {
				cell += "*"
			}
			row = append(row, cell)
		}
		for _, d := range e.Result.Diagnostics {
			notes = append(notes, fmt.Sprintf("  %s: %s", e.Name, d.Message))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	writeTable(&b, rows)

	if s := summaryOf(entries); opts.Summary && s != nil {
		b.WriteString(fmt.Sprintf("\nMacro average over %d matrices:\n", s.Count))
		for _, name := range metrics.MetricNames {
			m := s.Metrics[name]
			label := padRight(metricLabels[name]+":", 13)
			if m.Defined == 0 {
				b.WriteString(fmt.Sprintf("  %s undefined\n", label))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s %s (σ=%s, n=%d)\n", label,
				formatRatio(m.Mean, digits), formatRatio(m.StdDev, digits), m.Defined))
		}
	}

	if len(notes) > 0 {
		b.WriteString("\n⚠️  Diagnostics (* = undefined ratio reported as 0):\n")
		for _, n := range notes {
			b.WriteString(n + "\n")
		}
	}

	if len(errs) > 0 {
		b.WriteString("\n❌ Errors:\n")
		for _, e := range errs {
			b.WriteString(e + "\n")
		}
	}

	return b.String()
}

func writeTable(b *strings.Builder, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for r, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(padRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteString("\n")

		if r == 0 {
			total := 0
			for _, w := range widths {
				total += w + 2
			}
			b.WriteString(strings.Repeat("-", total-2))
			b.WriteString("\n")
		}
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// formatCount prints whole counts with thousands separators and weighted
// counts with two decimals.
func formatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return countPrinter.Sprintf("%d", int64(v))
	}
	return countPrinter.Sprintf("%.2f", v)
}
