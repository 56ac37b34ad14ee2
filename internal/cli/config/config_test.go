package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Pretty)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.GraphPath)
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "sqlstudio.yaml")
	content := `dialect: sqlserver
pretty: true
max_depth: 3
graph: schema.json
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

	cfg, err := LoadConfig(cfgFile, nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlserver", cfg.Dialect)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "schema.json", cfg.GraphPath)
	assert.Equal(t, cfgFile, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "sqlstudio.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("dialect: mysql\n"), 0o600))

	t.Setenv("SQLSTUDIO_DIALECT", "sqlserver")

	cfg, err := LoadConfig(cfgFile, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlserver", cfg.Dialect)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("SQLSTUDIO_DIALECT", "sqlserver")
	t.Setenv("SQLSTUDIO_MAX_DEPTH", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", DefaultDialect, "")
	flags.Int("max-depth", DefaultMaxDepth, "")
	require.NoError(t, flags.Parse([]string{"--dialect", "mysql"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	// Explicitly set flag wins; unset flag leaves the env value in place.
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, 2, cfg.MaxDepth)
}

func TestLoadConfig_InvalidDialect(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("SQLSTUDIO_DIALECT", "oracle")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dialect")
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("SQLSTUDIO_OUTPUT", "xml")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestGetCurrentConfig(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	assert.Nil(t, GetCurrentConfig())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())
}
