package config

import "time"

// RelayConfig controls the credential relay server and its daily scheduler.
type RelayConfig struct {
	Port            string
	SecretKey       string
	KeySalt         string
	ReplayWindow    time.Duration
	DatabaseURL     string
	RedisAddr       string
	RateLimitMax    int
	RateLimitWindow time.Duration
	DailyCheckHour  int
	TipoffLeadTime  time.Duration
}

func loadRelay() RelayConfig {
	return RelayConfig{
		Port:            envOrDefault(envRelayPort, defaultRelayPort),
		SecretKey:       envOrDefault(envRelaySecret, ""),
		KeySalt:         envOrDefault(envRelaySalt, ""),
		ReplayWindow:    durationEnvOrDefault(envRelayWindow, defaultRelayWindow),
		DatabaseURL:     envOrDefault(envDatabaseURL, ""),
		RedisAddr:       envOrDefault(envRedisAddr, defaultRedisAddr),
		RateLimitMax:    intEnvOrDefault(envRateLimitMax, defaultRateLimitMax),
		RateLimitWindow: durationEnvOrDefault(envRateLimitWindow, defaultRateLimitWindow),
		DailyCheckHour:  intEnvOrDefault(envDailyCheckHour, defaultDailyCheckHour),
		TipoffLeadTime:  durationEnvOrDefault(envTipoffLeadTime, defaultTipoffLead),
	}
}
