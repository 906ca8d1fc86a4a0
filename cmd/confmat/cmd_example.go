package main

import (
	"github.com/spboyer/confmat/internal/metrics"
	"github.com/spboyer/confmat/internal/reporting"
	"github.com/spf13/cobra"
)

// exampleMatrices are the demonstration inputs shown by `confmat example`.
var exampleMatrices = []struct {
	name   string
	counts metrics.Counts
}{
	{"typical", metrics.Counts{TP: 85, TN: 92, FP: 15, FN: 8}},
	{"no false positives", metrics.Counts{TP: 50, TN: 20, FP: 0, FN: 30}},
	{"empty matrix", metrics.Counts{}},
}

func newExampleCommand() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Show the metrics for a few demonstration matrices",
		Long: `Compute the metrics for three demonstration matrices: a typical one, one
without false positives, and an empty one that cannot be computed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			format, opts, err := out.resolve(cmd, cfg)
			if err != nil {
				return err
			}
			opts.Summary = false
			opts.Title = "confmat examples"

			calc := newCalculator(cmd)
			entries := make([]reporting.Entry, 0, len(exampleMatrices))
			for _, m := range exampleMatrices {
				result, err := calc.Compute(cmd.Context(), m.counts)
				entries = append(entries, reporting.Entry{Name: m.name, Counts: m.counts, Result: result, Err: err})
			}
			return reporting.Write(cmd.OutOrStdout(), format, entries, opts)
		},
	}

	out.register(cmd)
	return cmd
}
