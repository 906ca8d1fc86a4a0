package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spboyer/confmat/internal/metrics"
	"github.com/stretchr/testify/assert"
)

// runCLI executes the root command with args and stdin, isolating it from
// any .confmat.yaml outside the test's temp dir.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	hasProjectDir := false
	for _, a := range args {
		if strings.HasPrefix(a, "--project-dir") {
			hasProjectDir = true
		}
	}
	if !hasProjectDir {
		args = append(args, "--project-dir", t.TempDir())
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestComputationError(t *testing.T) {
	err := &ComputationError{Err: metrics.ErrEmptyInput}

	assert.Equal(t, metrics.ErrEmptyInput.Error(), err.Error())
	assert.True(t, errors.Is(err, metrics.ErrEmptyInput))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"computation error", &ComputationError{Err: metrics.ErrEmptyInput}, ExitComputeFailed},
		{"wrapped computation error", fmt.Errorf("batch: %w", &ComputationError{Err: errors.New("strict")}), ExitComputeFailed},
		{"joined computation error", errors.Join(errors.New("context"), &ComputationError{Err: errors.New("x")}), ExitComputeFailed},
		{"regular error", errors.New("config error"), ExitError},
		{"bare sentinel without wrapper", metrics.ErrEmptyInput, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"compute", "batch", "example"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("project-dir"))
}

func TestRootCommand_Version(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--version")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "confmat version dev")
}
