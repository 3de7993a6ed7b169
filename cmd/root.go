package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/querygen/internal/config"
	"github.com/abhisek/querygen/internal/logging"
	"github.com/abhisek/querygen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "querygen",
	Short: "Synthetic NL-to-MongoDB training data generator",
	Long: `querygen fills question templates with random ticket vocabulary and writes
paired (question, MongoDB filter) records for fine-tuning a query model.

Run without a subcommand it behaves like "querygen generate".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.LoadDotEnv(".env")
		return err
	},
	RunE: runGenerate,
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite run history (overrides QUERYGEN_DB env var)")
	pf.String("config", "", "Path to a YAML config file")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "console", "Log encoding: console or json")

	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves flags, environment and the optional config file
// for cmd, validating every generate setting.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return resolveConfig(cmd, config.Load)
}

// loadCommonConfig resolves only the database and logging settings.
func loadCommonConfig(cmd *cobra.Command) (*config.Config, error) {
	return resolveConfig(cmd, config.LoadCommon)
}

func resolveConfig(cmd *cobra.Command, load func(*viper.Viper, string) (*config.Config, error)) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	configFile, _ := cmd.Flags().GetString("config")
	return load(v, configFile)
}

// newLogger builds the logger from the resolved config.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// resolveDBPath returns the database path using --db / QUERYGEN_DB,
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the run history database.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
