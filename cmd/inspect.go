package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/querygen/internal/dataset"
	"github.com/abhisek/querygen/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a generated dataset file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read dataset: %w", err)
		}
		report.Print(cmd.OutOrStdout(), report.RenderStats(args[0], dataset.Inspect(records)))
		return nil
	},
}
