// Package config reads runtime configuration from environment variables
// with sensible defaults.
package config

// Config holds runtime configuration shared by both binaries.
type Config struct {
	LogLevel  string
	LogFormat string
	ESPN      ESPNConfig
	Season    SeasonConfig
	Relay     RelayConfig
	Metrics   MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		LogLevel:  envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat: envOrDefault(envLogFormat, defaultLogFormat),
		ESPN:      loadESPN(),
		Season:    loadSeason(),
		Relay:     loadRelay(),
		Metrics:   loadMetrics(),
	}
}
