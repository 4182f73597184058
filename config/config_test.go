package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, "https://cloud.langfuse.com", cfg.Langfuse.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Langfuse.Enabled())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: gemini-1.5-pro
max_iterations: 3
langfuse:
  public_key: pk-test
  secret_key: sk-test
  host: https://langfuse.internal
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, "https://langfuse.internal", cfg.Langfuse.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Langfuse.Enabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gemini-1.5-pro\nmax_iterations: 3\n"), 0o600))

	t.Setenv("SEARCHAGENT_MODEL", "gemini-2.5-flash")
	t.Setenv("SEARCHAGENT_MAX_ITERATIONS", "7")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 7, cfg.MaxIterations)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SEARCHAGENT_MAX_ITERATIONS", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxIterations)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLangfuseConfig_PlaceholderKeysDisabled(t *testing.T) {
	cfg := LangfuseConfig{PublicKey: "your-public-key", SecretKey: "your-secret-key"}
	assert.False(t, cfg.Enabled())
}
