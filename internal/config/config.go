package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	AdminToken   string
	Sheets       SheetsConfig
	Static       StaticConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		AdminToken:   envOrDefault(envAdminToken, ""),
		Sheets:       loadSheets(),
		Static:       loadStatic(),
		Metrics:      loadMetrics(),
	}
}

// Addr is the listen address of the API server.
func (c Config) Addr() string {
	return ":" + c.Port
}
