package config

// Service loads and validates application configuration
type Service interface {
	Load(path string) (*Config, error)
}

// Logger is the minimal logging surface used during startup
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
}
