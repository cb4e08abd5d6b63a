package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied. The default
// responder points at Groq's OpenAI-compatible endpoint and reads its key
// from the GROQ_API_KEY environment variable.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8080,
			Bind: "loopback",
		},
		Responder: ResponderConfig{
			Provider:       "groq",
			BaseURL:        "https://api.groq.com/openai/v1",
			APIKey:         "${GROQ_API_KEY}",
			Model:          "llama-3.3-70b-versatile",
			TimeoutSeconds: 60,
		},
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
