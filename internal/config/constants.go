package config

import "time"

const (
	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envEspnReadBaseURL  = "ESPN_READ_BASE_URL"
	envEspnWriteBaseURL = "ESPN_WRITE_BASE_URL"
	envEspnScoreboard   = "ESPN_SCOREBOARD_BASE_URL"
	envEspnS2           = "ESPN_S2"
	envEspnSWID         = "ESPN_SWID"
	envLeagueID         = "LEAGUE_ID"
	envTeamID           = "TEAM_ID"
	envSeasonYear       = "SEASON_YEAR"

	envSport           = "SPORT"
	envSportsFile      = "SPORTS_CONFIG_FILE"
	envSubmitDelay     = "SUBMIT_DELAY"
	envCalendarWindow  = "CALENDAR_WINDOW_DAYS"
	envCalendarDir     = "CALENDAR_CACHE_DIR"
	envMaxRetries      = "API_MAX_RETRIES"
	envInitialInterval = "API_RETRY_INTERVAL"

	envRelayPort       = "RELAY_PORT"
	envRelaySecret     = "RELAY_SECRET_KEY"
	envRelaySalt       = "RELAY_KEY_SALT"
	envRelayWindow     = "RELAY_REPLAY_WINDOW"
	envDatabaseURL     = "DATABASE_URL"
	envRedisAddr       = "REDIS_ADDR"
	envRateLimitMax    = "RATE_LIMIT_MAX"
	envRateLimitWindow = "RATE_LIMIT_WINDOW"
	envDailyCheckHour  = "DAILY_CHECK_HOUR"
	envTipoffLeadTime  = "TIPOFF_LEAD_TIME"

	defaultLogLevel  = "info"
	defaultLogFormat = "json"

	defaultMetricsPort = "9090"

	defaultSport = "basketball"
	// Paced between per-day submissions so a full season pass stays friendly
	// to the fantasy API.
	defaultSubmitDelay    = 300 * Duration(time.Millisecond)
	defaultCalendarWindow = 60
	defaultCalendarDir    = "data/calendar"
	defaultMaxRetries     = 3
	defaultRetryInterval  = 500 * Duration(time.Millisecond)

	defaultRelayPort       = "8080"
	defaultRelayWindow     = 5 * Duration(time.Minute)
	defaultRedisAddr       = "localhost:6379"
	defaultRateLimitMax    = 100
	defaultRateLimitWindow = 15 * Duration(time.Minute)
	// Local hour for the daily credentials-and-schedule check.
	defaultDailyCheckHour = 9
	defaultTipoffLead     = 5 * Duration(time.Minute)
)
