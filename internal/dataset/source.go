// Package dataset loads named confusion matrices from CSV and YAML files.
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spboyer/confmat/internal/metrics"
)

// NamedCounts is one confusion matrix read from a source file.
type NamedCounts struct {
	Name   string
	Counts metrics.Counts
}

// Load reads matrices from path, choosing the parser by file extension.
func Load(path string) ([]NamedCounts, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported matrix file %s: extension must be .csv, .yaml or .yml", path)
	}
}

func defaultName(row int) string {
	return fmt.Sprintf("row %d", row)
}
