package config

// Config is the root configuration for switchboard.
type Config struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Responder ResponderConfig `yaml:"responder,omitempty"`
	Store     StoreConfig     `yaml:"store,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ServerConfig controls the HTTP/WebSocket server.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "all" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"` // empty means allow all
}

// ResponderConfig selects and configures the automated responder.
type ResponderConfig struct {
	Provider       string `yaml:"provider,omitempty"` // "groq" | "openai" | "custom" | "mock"
	BaseURL        string `yaml:"baseUrl,omitempty"`
	APIKey         string `yaml:"apiKey,omitempty"` // supports ${ENV_VAR} references
	Model          string `yaml:"model,omitempty"`
	SystemPrompt   string `yaml:"systemPrompt,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// StoreConfig selects the lead store backend.
type StoreConfig struct {
	Driver string `yaml:"driver,omitempty"` // "sqlite" | "memory"
	Path   string `yaml:"path,omitempty"`   // sqlite database file; empty means <base>/data/switchboard.db
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
