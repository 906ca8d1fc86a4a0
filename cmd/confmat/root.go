package main

import (
	"github.com/spboyer/confmat/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confmat",
		Short: "confmat - classification metrics from a confusion matrix",
		Long: `confmat computes accuracy, sensitivity (recall), specificity, precision
and F-score from the four cells of a binary confusion matrix.

Undefined precision and F-score values are reported as 0 with a warning;
undefined sensitivity and specificity are reported as undefined.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("project-dir", ".", "Directory to start the search for "+projectconfig.FileName)

	// Add subcommands
	cmd.AddCommand(newComputeCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newExampleCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
