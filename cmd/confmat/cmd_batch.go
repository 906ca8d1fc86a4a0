package main

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/confmat/internal/dataset"
	"github.com/spboyer/confmat/internal/reporting"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBatchCommand() *cobra.Command {
	var (
		out    outputFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "batch <matrices.csv|matrices.yaml> [more files ...]",
		Short: "Compute metrics for every matrix in one or more files",
		Long: `Load named confusion matrices from CSV or YAML files and report the metrics
of each one, followed by the macro average across all of them.

CSV files need a header row with the columns tp, tn, fp and fn (and an
optional name column). YAML files hold a "matrices" list of objects with
the same keys.

Matrices that cannot be computed are reported alongside the others. With
--strict, any such matrix, or any undefined precision or F-score, makes
the command exit with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, &out, strict, args)
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any matrix errors or needs a zero substitution")

	return cmd
}

func runBatch(cmd *cobra.Command, out *outputFlags, strict bool, paths []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	format, opts, err := out.resolve(cmd, cfg)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("strict") {
		strict = cfg.StrictEnabled()
	}

	loaded := make([][]dataset.NamedCounts, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			rows, err := dataset.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			loaded[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	calc := newCalculator(cmd)
	var entries []reporting.Entry
	for i, rows := range loaded {
		for _, row := range rows {
			name := row.Name
			if len(paths) > 1 {
				name = filepath.Base(paths[i]) + ":" + name
			}
			result, err := calc.Compute(cmd.Context(), row.Counts)
			entries = append(entries, reporting.Entry{Name: name, Counts: row.Counts, Result: result, Err: err})
		}
	}
	if len(entries) == 0 {
		return fmt.Errorf("no matrices found in %d file(s)", len(paths))
	}

	if len(paths) == 1 {
		opts.Title = filepath.Base(paths[0])
	}
	if err := reporting.Write(cmd.OutOrStdout(), format, entries, opts); err != nil {
		return err
	}

	if strict {
		return strictViolations(entries)
	}
	return nil
}

// strictViolations returns a ComputationError describing how many
// matrices failed or needed a zero substitution.
func strictViolations(entries []reporting.Entry) error {
	failed, substituted := 0, 0
	for _, e := range entries {
		switch {
		case e.Err != nil:
			failed++
		case e.Result.HasDiagnostics():
			substituted++
		}
	}
	if failed == 0 && substituted == 0 {
		return nil
	}
	return &ComputationError{
		Err: fmt.Errorf("strict mode: %d of %d matrices failed and %d needed a zero substitution", failed, len(entries), substituted),
	}
}
