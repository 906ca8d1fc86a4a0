package main

import (
	"fmt"

	"github.com/spboyer/confmat/internal/metrics"
	"github.com/spboyer/confmat/internal/reporting"
	"github.com/spboyer/confmat/internal/wizard"
	"github.com/spf13/cobra"
)

func newComputeCommand() *cobra.Command {
	var (
		out    outputFlags
		counts metrics.Counts
	)

	cmd := &cobra.Command{
		Use:   "compute [tp tn fp fn]",
		Short: "Compute metrics for a single confusion matrix",
		Long: `Compute accuracy, sensitivity, specificity, precision and F-score for one
confusion matrix.

The counts are taken, in order of preference, from positional arguments
(tp tn fp fn), from the --tp/--tn/--fp/--fn flags, from an interactive prompt
when stdin is a terminal, or as four whitespace-separated numbers on stdin.`,
		Example: `  confmat compute 85 92 15 8
  confmat compute --tp 50 --tn 20 --fn 30 --format json
  echo "85 92 15 8" | confmat compute`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return fmt.Errorf("expected 4 counts (tp tn fp fn), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readComputeCounts(cmd, args, counts)
			if err != nil {
				return err
			}
			return runCompute(cmd, &out, c)
		},
	}

	out.register(cmd)
	cmd.Flags().Float64Var(&counts.TP, "tp", 0, "True positives")
	cmd.Flags().Float64Var(&counts.TN, "tn", 0, "True negatives")
	cmd.Flags().Float64Var(&counts.FP, "fp", 0, "False positives")
	cmd.Flags().Float64Var(&counts.FN, "fn", 0, "False negatives")

	return cmd
}

func readComputeCounts(cmd *cobra.Command, args []string, flagCounts metrics.Counts) (metrics.Counts, error) {
	if len(args) == 4 {
		if anyCountFlag(cmd) {
			return metrics.Counts{}, fmt.Errorf("pass counts either as arguments or as --tp/--tn/--fp/--fn flags, not both")
		}
		var v [4]float64
		for i, name := range []string{"tp", "tn", "fp", "fn"} {
			n, err := wizard.ParseCount(args[i])
			if err != nil {
				return metrics.Counts{}, fmt.Errorf("%s: %w", name, err)
			}
			v[i] = n
		}
		return metrics.Counts{TP: v[0], TN: v[1], FP: v[2], FN: v[3]}, nil
	}

	if anyCountFlag(cmd) {
		return flagCounts, nil
	}

	in := cmd.InOrStdin()
	if wizard.IsTerminal(in) {
		return wizard.RunCountsWizard(in, cmd.ErrOrStderr())
	}
	return wizard.ReadCounts(in)
}

func anyCountFlag(cmd *cobra.Command) bool {
	for _, name := range []string{"tp", "tn", "fp", "fn"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func runCompute(cmd *cobra.Command, out *outputFlags, counts metrics.Counts) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	format, opts, err := out.resolve(cmd, cfg)
	if err != nil {
		return err
	}
	opts.Summary = false

	result, err := newCalculator(cmd).Compute(cmd.Context(), counts)
	if err != nil {
		return &ComputationError{Err: err}
	}

	return reporting.Write(cmd.OutOrStdout(), format, []reporting.Entry{
		{Name: "matrix", Counts: counts, Result: result},
	}, opts)
}
