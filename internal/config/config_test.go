package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("num-examples", DefaultNumExamples, "")
	fs.String("output", "", "")
	fs.String("format", DefaultFormat, "")
	fs.Int64("seed", 0, "")
	fs.String("log-level", "info", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.NumExamples)
	assert.Equal(t, "generated_dataset.jsonl", cfg.Output)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.NoHistory)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("QUERYGEN_NUM_EXAMPLES", "25")
	t.Setenv("QUERYGEN_OUTPUT", "train.jsonl")
	t.Setenv("QUERYGEN_SEED", "12345")
	t.Setenv("QUERYGEN_NO_HISTORY", "true")
	t.Setenv("QUERYGEN_LOG_FORMAT", "JSON")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.NumExamples)
	assert.Equal(t, "train.jsonl", cfg.Output)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.True(t, cfg.NoHistory)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("QUERYGEN_NUM_EXAMPLES", "25")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--num-examples", "7", "--format", "parquet"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.NumExamples)
	assert.Equal(t, "parquet", cfg.Format)
	assert.Equal(t, "generated_dataset.parquet", cfg.Output)
}

func TestDefaultOutputFollowsFormat(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "generated_dataset.jsonl"},
		{[]string{"--format", "ndjson"}, "generated_dataset.jsonl"},
		{[]string{"--format", "PARQUET"}, "generated_dataset.parquet"},
		{[]string{"--format", "parquet", "--output", "train.jsonl"}, "train.jsonl"},
	}

	for _, tt := range tests {
		fs := testFlags()
		require.NoError(t, fs.Parse(tt.args))
		v := New()
		require.NoError(t, BindFlags(v, fs))

		cfg, err := Load(v, "")
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, cfg.Output, tt.args)
	}
}

func TestLoadCommonIgnoresGenerateSettings(t *testing.T) {
	t.Setenv("QUERYGEN_FORMAT", "csv")
	t.Setenv("QUERYGEN_NUM_EXAMPLES", "-1")
	t.Setenv("QUERYGEN_DB", "/tmp/history.db")
	t.Setenv("QUERYGEN_LOG_LEVEL", "DEBUG")

	_, err := Load(New(), "")
	require.Error(t, err)

	cfg, err := LoadCommon(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/history.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadCommonRejectsInvalidLogging(t *testing.T) {
	t.Setenv("QUERYGEN_LOG_FORMAT", "xml")

	_, err := LoadCommon(New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Format must be one of [console json]")
}

func TestUnsetFlagFallsBackToEnv(t *testing.T) {
	t.Setenv("QUERYGEN_OUTPUT", "from-env.jsonl")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env.jsonl", cfg.Output)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "querygen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_examples: 3\noutput: small.jsonl\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NumExamples)
	assert.Equal(t, "small.jsonl", cfg.Output)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"negative count", map[string]string{"QUERYGEN_NUM_EXAMPLES": "-1"}, "NumExamples must be >= 0"},
		{"non-integer count", map[string]string{"QUERYGEN_NUM_EXAMPLES": "ten"}, "decode config"},
		{"unknown format", map[string]string{"QUERYGEN_FORMAT": "csv"}, "Format must be one of"},
		{"unknown log level", map[string]string{"QUERYGEN_LOG_LEVEL": "trace"}, "Log.Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(New(), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRequiresOutput(t *testing.T) {
	cfg := Config{NumExamples: 1, Format: "jsonl", Log: LogConfig{Level: "info", Format: "console"}}
	err := Validate(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Output is required")

	cfg.Output = "out.jsonl"
	require.NoError(t, Validate(&cfg))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUERYGEN_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QUERYGEN_TEST_DOTENV") })

	got, err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "loaded", os.Getenv("QUERYGEN_TEST_DOTENV"))

	got, err = LoadDotEnv(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
