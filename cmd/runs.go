package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/querygen/internal/report"
	"github.com/abhisek/querygen/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the history of generate runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withRuns(cmd, func(repo store.RunRepo) error {
			runs, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			report.Print(cmd.OutOrStdout(), report.RenderRuns(runs))
			return nil
		})
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run and its per-template counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuns(cmd, func(repo store.RunRepo) error {
			run, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			report.Print(cmd.OutOrStdout(), report.RenderRun(run))
			return nil
		})
	},
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("--keep must be >= 0, got %d", keep)
		}
		return withRuns(cmd, func(repo store.RunRepo) error {
			n, err := repo.Prune(cmd.Context(), keep)
			if err != nil {
				return fmt.Errorf("prune runs: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs.\n", n)
			return nil
		})
	},
}

// withRuns opens the history database for the duration of fn.
func withRuns(cmd *cobra.Command, fn func(store.RunRepo) error) error {
	cfg, err := loadCommonConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.RunRepo())
}

func init() {
	runsListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show (0 for all)")
	runsPruneCmd.Flags().Int("keep", 10, "Number of recent runs to keep")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsPruneCmd)
}
