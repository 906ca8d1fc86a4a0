package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/confmat/internal/metrics"
	"github.com/spboyer/confmat/internal/projectconfig"
	"github.com/spboyer/confmat/internal/reporting"
	"github.com/spf13/cobra"
)

// outputFlags are the report flags shared by compute, batch and example.
type outputFlags struct {
	format string
	digits int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", projectconfig.DefaultFormat, "Output format: text, json, markdown or junit")
	cmd.Flags().IntVar(&o.digits, "digits", projectconfig.DefaultDigits, "Decimal places for ratios in text and markdown output")
}

// loadProjectConfig loads .confmat.yaml starting from --project-dir.
func loadProjectConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	dir := "."
	if f := cmd.Flag("project-dir"); f != nil && f.Value.String() != "" {
		dir = f.Value.String()
	}
	return projectconfig.Load(dir)
}

// resolve merges flags over the project config; explicitly set flags win.
func (o *outputFlags) resolve(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) (reporting.Format, reporting.Options, error) {
	formatName := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		formatName = o.format
	}
	format, err := reporting.ParseFormat(formatName)
	if err != nil {
		return "", reporting.Options{}, err
	}

	digits := cfg.Output.Digits
	if cmd.Flags().Changed("digits") {
		digits = o.digits
	}
	if digits < 1 || digits > 15 {
		return "", reporting.Options{}, fmt.Errorf("--digits must be between 1 and 15, got %d", digits)
	}

	return format, reporting.Options{Digits: digits, Summary: cfg.SummaryEnabled()}, nil
}

// newCalculator returns a calculator that logs to the command's stderr at
// the level selected by --debug.
func newCalculator(cmd *cobra.Command) metrics.Calculator {
	level := slog.LevelInfo
	if f := cmd.Flag("debug"); f != nil && f.Value.String() == "true" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return metrics.Calculator{Logger: logger}
}
