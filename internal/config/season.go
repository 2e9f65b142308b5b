package config

import "time"

// SeasonConfig controls the season automation run.
type SeasonConfig struct {
	Sport            string
	SportsFile       string // optional YAML slot-table overrides
	SubmitDelay      time.Duration
	CalendarDays     int
	CalendarCacheDir string
	MaxRetries       int
	RetryInterval    time.Duration
}

func loadSeason() SeasonConfig {
	return SeasonConfig{
		Sport:            envOrDefault(envSport, defaultSport),
		SportsFile:       envOrDefault(envSportsFile, ""),
		SubmitDelay:      durationEnvOrDefault(envSubmitDelay, defaultSubmitDelay),
		CalendarDays:     intEnvOrDefault(envCalendarWindow, defaultCalendarWindow),
		CalendarCacheDir: envOrDefault(envCalendarDir, defaultCalendarDir),
		MaxRetries:       intEnvOrDefault(envMaxRetries, defaultMaxRetries),
		RetryInterval:    durationEnvOrDefault(envInitialInterval, defaultRetryInterval),
	}
}
