// Package reporting renders metric results for people and for CI.
package reporting

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spboyer/confmat/internal/metrics"
)

// Format selects the report renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatJUnit    Format = "junit"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatJUnit}

// DefaultDigits is the number of decimals used when Options.Digits is 0.
const DefaultDigits = 4

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		return FormatMarkdown, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unsupported format %q: must be one of %s", s, strings.Join(names, ", "))
}

// Entry is one named matrix and either its result or the error that
// prevented computing it.
type Entry struct {
	Name   string
	Counts metrics.Counts
	Result *metrics.Result
	Err    error
}

// Options tunes the rendered output.
type Options struct {
	// Digits is the number of decimals for ratios in text and markdown.
	Digits int
	// Summary appends the macro-average over all successful entries.
	Summary bool
	// Title names the report (markdown heading, JUnit suite name).
	Title string
}

func (o Options) digits() int {
	if o.Digits <= 0 {
		return DefaultDigits
	}
	return o.Digits
}

func (o Options) title() string {
	if o.Title == "" {
		return "confmat"
	}
	return o.Title
}

// Write renders entries to w in the given format.
func Write(w io.Writer, format Format, entries []Entry, opts Options) error {
	switch format {
	case FormatText:
		return writeString(w, FormatTable(entries, opts))
	case FormatMarkdown:
		return writeString(w, FormatMarkdownReport(entries, opts))
	case FormatJSON:
		return writeJSON(w, entries, opts)
	case FormatJUnit:
		return writeJUnit(w, entries, opts)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// summaryOf returns the macro-average of the successful entries, or nil
// when there are fewer than two of them.
func summaryOf(entries []Entry) *metrics.Summary {
	results := make([]*metrics.Result, 0, len(entries))
	for _, e := range entries {
		if e.Err == nil && e.Result != nil {
			results = append(results, e.Result)
		}
	}
	if len(results) < 2 {
		return nil
	}
	return metrics.Summarize(results)
}

// formatRatio prints v with the given number of decimals; undefined
// ratios print as "undefined".
func formatRatio(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "undefined"
	}
	return fmt.Sprintf("%.*f", digits, v)
}

// substituted reports whether metric was replaced by 0 in r.
func substituted(r *metrics.Result, metric string) bool {
	for _, d := range r.Diagnostics {
		if d.Metric == metric {
			return true
		}
	}
	return false
}

// metricLabels are the column headings for each metric.
var metricLabels = map[string]string{
	metrics.MetricAccuracy:    "Accuracy",
	metrics.MetricSensitivity: "Sensitivity",
	metrics.MetricSpecificity: "Specificity",
	metrics.MetricPrecision:   "Precision",
	metrics.MetricFScore:      "F-Score",
}
