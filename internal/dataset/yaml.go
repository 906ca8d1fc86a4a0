package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/spboyer/confmat/internal/metrics"
	"gopkg.in/yaml.v3"
)

type matrixFile struct {
	Matrices []struct {
		Name string  `yaml:"name"`
		TP   float64 `yaml:"tp"`
		TN   float64 `yaml:"tn"`
		FP   float64 `yaml:"fp"`
		FN   float64 `yaml:"fn"`
	} `yaml:"matrices"`
}

// LoadYAML reads a matrix file of the form
//
//	matrices:
//	  - name: baseline
//	    tp: 85
//	    tn: 92
//	    fp: 15
//	    fn: 8
//
// The document is checked against the embedded schema before decoding;
// violations are returned as a *SchemaError.
func LoadYAML(path string) ([]NamedCounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yaml: read %s: %w", path, err)
	}

	if problems := ValidateMatricesBytes(data); len(problems) > 0 {
		return nil, &SchemaError{Path: path, Problems: problems}
	}

	var file matrixFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("yaml: parse %s: %w", path, err)
	}

	rows := make([]NamedCounts, 0, len(file.Matrices))
	for i, m := range file.Matrices {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			name = defaultName(i + 1)
		}
		rows = append(rows, NamedCounts{
			Name:   name,
			Counts: metrics.Counts{TP: m.TP, TN: m.TN, FP: m.FP, FN: m.FN},
		})
	}
	return rows, nil
}
