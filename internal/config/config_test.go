package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, "groq", cfg.Responder.Provider)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Responder.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Responder.Model)
	assert.Equal(t, 60, cfg.Responder.TimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	// Should return defaults
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9999
  bind: all
  allowedOrigins:
    - "https://chat.example.com"
responder:
  provider: custom
  baseUrl: http://localhost:11434/v1
  model: qwen2.5-coder
  timeoutSeconds: 120
store:
  driver: memory
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "all", cfg.Server.Bind)
	assert.Equal(t, []string{"https://chat.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "custom", cfg.Responder.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Responder.BaseURL)
	assert.Equal(t, "qwen2.5-coder", cfg.Responder.Model)
	assert.Equal(t, 120, cfg.Responder.TimeoutSeconds)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadFillsPartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, "groq", cfg.Responder.Provider)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SWITCHBOARD_PORT", "7001")
	t.Setenv("SWITCHBOARD_LOG_LEVEL", "DEBUG")
	t.Setenv("SWITCHBOARD_DB_PATH", "/tmp/leads.db")

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/leads.db", cfg.Store.Path)
}

func TestAPIKeyExpansion(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test123")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responder:\n  apiKey: ${GROQ_API_KEY}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gsk_test123", cfg.Responder.APIKey)
}

func TestUnsetEnvReferenceLeftIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responder:\n  apiKey: ${DEFINITELY_NOT_SET_12345}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_12345}", cfg.Responder.APIKey)
}
