package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuePaths(issues []ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, iss := range issues {
		out[i] = iss.Path
	}
	return out
}

func TestValidateCleanConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Responder.APIKey = "gsk_real"
	assert.Empty(t, Validate(&cfg))
}

func TestValidateMockNeedsNoCredentials(t *testing.T) {
	cfg := Defaults()
	cfg.Responder = ResponderConfig{Provider: "mock"}
	assert.Empty(t, Validate(&cfg))
}

func TestValidateBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = 70000
	cfg.Server.Bind = "tailnet"
	cfg.Store.Driver = "postgres"
	cfg.Logging.Level = "loud"
	cfg.Responder.Provider = "bard"
	cfg.Responder.APIKey = "k"

	paths := issuePaths(Validate(&cfg))
	assert.Contains(t, paths, "server.port")
	assert.Contains(t, paths, "server.bind")
	assert.Contains(t, paths, "store.driver")
	assert.Contains(t, paths, "logging.level")
	assert.Contains(t, paths, "responder.provider")
}

func TestValidateCustomBindNeedsHost(t *testing.T) {
	cfg := Defaults()
	cfg.Responder.APIKey = "k"
	cfg.Server.Bind = "custom"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "server.customBindHost", issues[0].Path)

	cfg.Server.CustomBindHost = "10.0.0.5"
	assert.Empty(t, Validate(&cfg))
}

func TestValidateUnresolvedAPIKey(t *testing.T) {
	cfg := Defaults()
	paths := issuePaths(Validate(&cfg))
	assert.Contains(t, paths, "responder.apiKey", "default config without GROQ_API_KEY set must be flagged")
}
