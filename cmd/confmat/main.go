package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Metrics computed
	ExitComputeFailed = 1 // Empty or invalid matrix, or a strict-mode violation
	ExitError         = 2 // Usage, configuration or I/O error
)

// ComputationError indicates that the input was read successfully but no
// usable metrics could be produced from it.
type ComputationError struct {
	Err error
}

func (e *ComputationError) Error() string {
	return e.Err.Error()
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var computeErr *ComputationError
	if errors.As(err, &computeErr) {
		return ExitComputeFailed
	}
	// All other errors are usage/configuration/runtime errors
	return ExitError
}
