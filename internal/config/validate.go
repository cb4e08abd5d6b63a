package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "all", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}
	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.customBindHost",
			Message: "required when bind: custom",
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validDrivers := []string{"sqlite", "memory"}
	if cfg.Store.Driver != "" && !slices.Contains(validDrivers, cfg.Store.Driver) {
		issues = append(issues, ValidationIssue{
			Path:    "store.driver",
			Message: fmt.Sprintf("must be one of %v, got %q", validDrivers, cfg.Store.Driver),
		})
	}

	validProviders := []string{"groq", "openai", "custom", "mock"}
	if cfg.Responder.Provider != "" && !slices.Contains(validProviders, cfg.Responder.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "responder.provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.Responder.Provider),
		})
	}

	if cfg.Responder.Provider != "" && cfg.Responder.Provider != "mock" {
		if cfg.Responder.Model == "" {
			issues = append(issues, ValidationIssue{
				Path:    "responder.model",
				Message: "required for a live responder",
			})
		}
		if cfg.Responder.BaseURL == "" {
			issues = append(issues, ValidationIssue{
				Path:    "responder.baseUrl",
				Message: "required for a live responder",
			})
		}
		// An unexpanded ${VAR} means the referenced variable was unset.
		if strings.Contains(cfg.Responder.APIKey, "${") {
			issues = append(issues, ValidationIssue{
				Path:    "responder.apiKey",
				Message: "unresolved environment reference: " + cfg.Responder.APIKey,
			})
		}
	}

	return issues
}
