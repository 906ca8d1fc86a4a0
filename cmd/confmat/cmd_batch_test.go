package main

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/confmat/internal/dataset"
	"github.com/spboyer/confmat/internal/projectconfig"
	"github.com/spboyer/confmat/internal/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMatrixFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const sampleCSV = `name,tp,tn,fp,fn
baseline,85,92,15,8
no-fp,50,20,0,30
`

const sampleYAML = `matrices:
  - name: negatives-only
    tp: 0
    tn: 10
    fp: 0
    fn: 0
  - name: empty
    tp: 0
    tn: 0
    fp: 0
    fn: 0
`

func TestBatchCommand_CSV(t *testing.T) {
	p := writeMatrixFile(t, t.TempDir(), "runs.csv", sampleCSV)

	stdout, _, err := runCLI(t, "", "batch", p)
	require.NoError(t, err)

	assert.Contains(t, stdout, "baseline")
	assert.Contains(t, stdout, "no-fp")
	assert.Contains(t, stdout, "0.8808")
	assert.Contains(t, stdout, "0.7692")
	assert.Contains(t, stdout, "Macro average over 2 matrices")
}

func TestBatchCommand_MultipleFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeMatrixFile(t, dir, "a.csv", sampleCSV)
	yamlPath := writeMatrixFile(t, dir, "b.yaml", sampleYAML)

	stdout, _, err := runCLI(t, "", "batch", csvPath, yamlPath, "--format", "json")
	require.NoError(t, err, "row errors are not fatal without --strict")

	var report struct {
		Matrices []struct {
			Name  string `json:"name"`
			Error string `json:"error"`
		} `json:"matrices"`
		Summary *struct {
			Count int `json:"count"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	names := make([]string, 0, len(report.Matrices))
	for _, m := range report.Matrices {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a.csv:baseline", "a.csv:no-fp", "b.yaml:negatives-only", "b.yaml:empty"}, names)
	assert.Contains(t, report.Matrices[3].Error, "empty")
	require.NotNil(t, report.Summary)
	assert.Equal(t, 3, report.Summary.Count)
}

func TestBatchCommand_Strict(t *testing.T) {
	dir := t.TempDir()
	clean := writeMatrixFile(t, dir, "clean.csv", sampleCSV)
	dirty := writeMatrixFile(t, dir, "dirty.yaml", sampleYAML)

	_, _, err := runCLI(t, "", "batch", clean, "--strict")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "batch", dirty, "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitComputeFailed, exitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 matrices failed and 1 needed a zero substitution")
	assert.Contains(t, stdout, "negatives-only", "the report is written before the strict check")
}

func TestBatchCommand_StrictFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeMatrixFile(t, dir, projectconfig.FileName, "strict: true\n")
	dirty := writeMatrixFile(t, dir, "dirty.yaml", sampleYAML)

	_, _, err := runCLI(t, "", "batch", dirty, "--project-dir", dir)
	require.Error(t, err)
	assert.Equal(t, ExitComputeFailed, exitCode(err))

	// --strict=false on the command line wins over the config file.
	_, _, err = runCLI(t, "", "batch", dirty, "--project-dir", dir, "--strict=false")
	require.NoError(t, err)
}

func TestBatchCommand_JUnit(t *testing.T) {
	p := writeMatrixFile(t, t.TempDir(), "dirty.yml", sampleYAML)

	stdout, _, err := runCLI(t, "", "batch", p, "-f", "junit")
	require.NoError(t, err)

	var suites reporting.JUnitTestSuites
	require.NoError(t, xml.Unmarshal([]byte(stdout), &suites))
	require.Len(t, suites.TestSuites, 1)
	assert.Equal(t, "dirty.yml", suites.TestSuites[0].Name)
	assert.Equal(t, 1, suites.Errors)
}

func TestBatchCommand_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	badSchema := writeMatrixFile(t, dir, "bad.yaml", "matrices:\n  - tp: 1\n")
	noRows := writeMatrixFile(t, dir, "empty.csv", "tp,tn,fp,fn\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"batch", filepath.Join(dir, "nope.csv")}, "failed to load"},
		{"unsupported extension", []string{"batch", filepath.Join(dir, "m.json")}, "unsupported matrix file"},
		{"schema violation", []string{"batch", badSchema}, "does not match the matrix file schema"},
		{"no rows", []string{"batch", noRows}, "no matrices found"},
		{"no args", []string{"batch"}, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, ExitError, exitCode(err))
		})
	}
}

func TestBatchCommand_SchemaErrorIsTyped(t *testing.T) {
	p := writeMatrixFile(t, t.TempDir(), "bad.yaml", "matrices:\n  - tp: one\n    tn: 1\n    fp: 1\n    fn: 1\n")

	_, _, err := runCLI(t, "", "batch", p)
	require.Error(t, err)
	var schemaErr *dataset.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, p, schemaErr.Path)
}

func TestStrictViolations(t *testing.T) {
	assert.NoError(t, strictViolations(nil))
}
