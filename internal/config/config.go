// Package config resolves run settings from flags, QUERYGEN_* environment
// variables, an optional config file and a .env file, in that priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "QUERYGEN"

const (
	DefaultNumExamples = 100
	DefaultOutput      = "generated_dataset.jsonl"
	DefaultFormat      = "jsonl"
)

// DefaultOutputFor returns the output path used when none is given. The
// extension follows the format so the file can be read back by extension.
func DefaultOutputFor(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "parquet") {
		return strings.TrimSuffix(DefaultOutput, ".jsonl") + ".parquet"
	}
	return DefaultOutput
}

// Config holds the settings of one generate run.
type Config struct {
	NumExamples int    `mapstructure:"num_examples" validate:"gte=0"`
	Output      string `mapstructure:"output" validate:"required"`
	Format      string `mapstructure:"format" validate:"oneof=jsonl ndjson parquet"`
	Seed        int64  `mapstructure:"seed"`
	Catalog     string `mapstructure:"catalog"`
	MetricsFile string `mapstructure:"metrics_file"`
	NoHistory   bool   `mapstructure:"no_history"`
	DB          string `mapstructure:"db"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig selects the logger level and encoder.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"num-examples": "num_examples",
	"output":       "output",
	"format":       "format",
	"seed":         "seed",
	"catalog":      "catalog",
	"metrics-file": "metrics_file",
	"no-history":   "no_history",
	"db":           "db",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("num_examples", DefaultNumExamples)
	v.SetDefault("output", "")
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("seed", 0)
	v.SetDefault("catalog", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("no_history", false)
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every known flag present in fs to its config key.
// Flags not present in fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// LoadDotEnv loads the first of paths that exists into the process
// environment. Variables already set are not overridden.
func LoadDotEnv(paths ...string) (string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("load %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}

// Load reads configFile (if any), decodes and validates the result.
// An empty output is replaced with DefaultOutputFor the format.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	cfg, err := decode(v, configFile)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCommon resolves only the settings shared by every command: the
// database path and logging. Generate settings are left zero, so a bad
// QUERYGEN_FORMAT or QUERYGEN_NUM_EXAMPLES does not affect other commands.
func LoadCommon(v *viper.Viper, configFile string) (*Config, error) {
	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	var common struct {
		DB  string    `mapstructure:"db"`
		Log LogConfig `mapstructure:"log"`
	}
	if err := v.Unmarshal(&common); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg := &Config{DB: common.DB, Log: common.Log}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := report(validate.Struct(cfg.Log)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

func decode(v *viper.Viper, configFile string) (*Config, error) {
	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if strings.TrimSpace(cfg.Output) == "" {
		cfg.Output = DefaultOutputFor(cfg.Format)
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation.
func Validate(cfg *Config) error {
	return report(validate.Struct(cfg))
}

// report joins validator field errors into one message.
func report(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}
