package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/confmat/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		want    []NamedCounts
		wantErr string
	}{
		{
			name: "named rows",
			csv:  "name,tp,tn,fp,fn\nbaseline,85,92,15,8\nstrict,50,20,0,30\n",
			want: []NamedCounts{
				{Name: "baseline", Counts: metrics.Counts{TP: 85, TN: 92, FP: 15, FN: 8}},
				{Name: "strict", Counts: metrics.Counts{TP: 50, TN: 20, FP: 0, FN: 30}},
			},
		},
		{
			name: "columns in any order and case",
			csv:  "FN, FP, TN, TP\n8, 15, 92, 85\n",
			want: []NamedCounts{
				{Name: "row 1", Counts: metrics.Counts{TP: 85, TN: 92, FP: 15, FN: 8}},
			},
		},
		{
			name: "blank name falls back to row number",
			csv:  "name,tp,tn,fp,fn,notes\nfirst,1,1,1,1,x\n,0.5,2,0,0,y\n",
			want: []NamedCounts{
				{Name: "first", Counts: metrics.Counts{TP: 1, TN: 1, FP: 1, FN: 1}},
				{Name: "row 2", Counts: metrics.Counts{TP: 0.5, TN: 2}},
			},
		},
		{
			name: "header only",
			csv:  "tp,tn,fp,fn\n",
			want: []NamedCounts{},
		},
		{
			name:    "empty file",
			csv:     "",
			wantErr: "no header row",
		},
		{
			name:    "missing column",
			csv:     "tp,tn,fp\n1,2,3\n",
			wantErr: `missing column "fn"`,
		},
		{
			name:    "not a number",
			csv:     "tp,tn,fp,fn\n1,2,3,4\n1,two,3,4\n",
			wantErr: "row 3: column tn",
		},
		{
			name:    "mismatched column count",
			csv:     "tp,tn,fp,fn\n1,2,3,4\n1,2\n",
			wantErr: "wrong number of fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "matrices.csv", tt.csv)
			got, err := LoadCSV(p)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, err := LoadCSV("/nonexistent/path/matrices.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: open")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "matrices.yaml", `
matrices:
  - name: baseline
    tp: 85
    tn: 92
    fp: 15
    fn: 8
  - tp: 0.5
    tn: 1
    fp: 0
    fn: 2
`)
	got, err := LoadYAML(p)
	require.NoError(t, err)
	assert.Equal(t, []NamedCounts{
		{Name: "baseline", Counts: metrics.Counts{TP: 85, TN: 92, FP: 15, FN: 8}},
		{Name: "row 2", Counts: metrics.Counts{TP: 0.5, TN: 1, FP: 0, FN: 2}},
	}, got)
}

func TestLoadYAML_SchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantPath string
	}{
		{
			name:     "missing count",
			yaml:     "matrices:\n  - name: a\n    tp: 1\n    tn: 1\n    fp: 1\n",
			wantPath: "/matrices/0",
		},
		{
			name:     "count is a string",
			yaml:     "matrices:\n  - tp: 1\n    tn: lots\n    fp: 1\n    fn: 1\n",
			wantPath: "/matrices/0/tn",
		},
		{
			name:     "unknown key",
			yaml:     "matrices:\n  - tp: 1\n    tn: 1\n    fp: 1\n    fn: 1\n    tpr: 1\n",
			wantPath: "/matrices/0",
		},
		{
			name:     "no matrices key",
			yaml:     "rows: []\n",
			wantPath: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "m.yml", tt.yaml)
			_, err := LoadYAML(p)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "expected *SchemaError, got %T: %v", err, err)
			require.NotEmpty(t, schemaErr.Problems)
			found := false
			for _, prob := range schemaErr.Problems {
				if strings.HasPrefix(prob, tt.wantPath) {
					found = true
				}
			}
			assert.True(t, found, "no problem reported at %s: %v", tt.wantPath, schemaErr.Problems)
		})
	}
}

func TestValidateMatricesBytes_InvalidYAML(t *testing.T) {
	errs := ValidateMatricesBytes([]byte("matrices: [unclosed"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "YAML parse error")
}

func TestValidateMatricesBytes_Valid(t *testing.T) {
	errs := ValidateMatricesBytes([]byte("matrices:\n  - {name: a, tp: 1, tn: 2, fp: 3, fn: 4}\n"))
	assert.Empty(t, errs)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "m.CSV", "tp,tn,fp,fn\n1,2,3,4\n")
	yamlPath := writeFile(t, dir, "m.yaml", "matrices:\n  - {tp: 1, tn: 2, fp: 3, fn: 4}\n")
	txtPath := writeFile(t, dir, "m.txt", "1 2 3 4\n")

	want := metrics.Counts{TP: 1, TN: 2, FP: 3, FN: 4}

	rows, err := Load(csvPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, want, rows[0].Counts)

	rows, err = Load(yamlPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, want, rows[0].Counts)

	_, err = Load(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported matrix file")
}
