package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf gives each test a fresh configuration store.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	content := `analyze:
  tokens: design/tokens.yaml
  threshold: 0.9
  parallelism: 4
  strict: true
verbose: true
`
	path := filepath.Join(t.TempDir(), ".uilint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, loadConfigFromPath(path))

	assert.Equal(t, "design/tokens.yaml", k.String("analyze.tokens"))
	assert.Equal(t, 0.9, k.Float64("analyze.threshold"))
	assert.Equal(t, 4, k.Int("analyze.parallelism"))
	assert.True(t, k.Bool("analyze.strict"))
	assert.True(t, k.Bool("verbose"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath(filepath.Join(t.TempDir(), "missing.yaml")))

	assert.Equal(t, "tokens.yaml", getStringWithFallback("tokens", "analyze.tokens", "tokens.yaml"))
	assert.Equal(t, 0.85, getFloat64WithFallback("threshold", "analyze.threshold", 0.85))
	assert.False(t, getBoolWithFallback("strict", "analyze.strict", false))
	assert.Equal(t, 5*time.Second, getDurationWithFallback("parse-timeout", "analyze.parse-timeout", 5*time.Second))
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	content := `analyze:
  tokens: from-file.yaml
`
	path := filepath.Join(t.TempDir(), ".uilint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("UILINT_ANALYZE_TOKENS", "from-env.yaml")

	require.NoError(t, loadConfigFromPath(path))
	assert.Equal(t, "from-env.yaml", k.String("analyze.tokens"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	require.NoError(t, k.Set("analyze.exempt", []string{"1px", "2px"}))
	assert.Equal(t, []string{"1px", "2px"}, getStringsWithFallback("exempt", "analyze.exempt"))

	require.NoError(t, k.Set("exempt", []string{"3px"}))
	assert.Equal(t, []string{"3px"}, getStringsWithFallback("exempt", "analyze.exempt"))
}

func TestGetIntWithFallbackPrecedence(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 8, getIntWithFallback("parallelism", "analyze.parallelism", 8))

	require.NoError(t, k.Set("analyze.parallelism", 2))
	assert.Equal(t, 2, getIntWithFallback("parallelism", "analyze.parallelism", 8))

	require.NoError(t, k.Set("parallelism", 6))
	assert.Equal(t, 6, getIntWithFallback("parallelism", "analyze.parallelism", 8))
}
