package reporting

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spboyer/confmat/internal/metrics"
)

type jsonEntry struct {
	Name   string          `json:"name"`
	Counts *metrics.Counts `json:"counts,omitempty"`
	Result *metrics.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type jsonReport struct {
	Matrices []jsonEntry      `json:"matrices"`
	Summary  *metrics.Summary `json:"summary,omitempty"`
}

func writeJSON(w io.Writer, entries []Entry, opts Options) error {
	report := jsonReport{Matrices: make([]jsonEntry, 0, len(entries))}
	for _, e := range entries {
		je := jsonEntry{Name: e.Name, Result: e.Result}
		if e.Err != nil {
			counts := e.Counts
			je.Counts = &counts
			je.Error = e.Err.Error()
		}
		report.Matrices = append(report.Matrices, je)
	}
	if opts.Summary {
		report.Summary = summaryOf(entries)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
