package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spboyer/confmat/internal/metrics"
)

var countColumns = []string{"tp", "tn", "fp", "fn"}

// LoadCSV reads a CSV file whose first row is a header naming the columns
// tp, tn, fp and fn (any order, case-insensitive) and optionally name.
// Extra columns are ignored.
func LoadCSV(path string) ([]NamedCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range countColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv: %s header is missing column %q", path, col)
		}
	}
	nameCol, hasName := index["name"]

	rows := make([]NamedCounts, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		var values [4]float64
		for j, col := range countColumns {
			raw := strings.TrimSpace(record[index[col]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: %s row %d: column %s: %q is not a number", path, line, col, raw)
			}
			values[j] = v
		}

		name := ""
		if hasName {
			name = strings.TrimSpace(record[nameCol])
		}
		if name == "" {
			name = defaultName(i + 1)
		}

		rows = append(rows, NamedCounts{
			Name:   name,
			Counts: metrics.Counts{TP: values[0], TN: values[1], FP: values[2], FN: values[3]},
		})
	}

	return rows, nil
}
