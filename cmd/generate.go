package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/querygen/internal/app"
	"github.com/abhisek/querygen/internal/config"
	"github.com/abhisek/querygen/internal/dataset"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a training dataset",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("num-examples", config.DefaultNumExamples, "Number of examples to generate")
	f.String("output", "", "Output file path (default "+config.DefaultOutput+", or .parquet with --format parquet)")
	f.String("format", config.DefaultFormat, "Output format: "+strings.Join(dataset.Formats(), ", "))
	f.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	f.String("catalog", "", "Template catalog file (default: built-in catalog)")
	f.String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	f.Bool("no-history", false, "Do not record the run in the history database")
}

// runGenerate resolves config, opens the history store and runs one
// generation.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	opts := app.Options{
		Config: cfg,
		Logger: log,
		Stdout: cmd.OutOrStdout(),
	}

	if !cfg.NoHistory {
		s, err := openStore(cfg)
		if err != nil {
			log.Warn("run history unavailable", zap.Error(err))
		} else {
			defer s.Close()
			opts.Runs = s.RunRepo()
		}
	}

	_, err = app.Run(cmd.Context(), opts)
	return err
}
