package espn

import "time"

const providerName = "espn"

const (
	defaultReadBaseURL       = "https://lm-api-reads.fantasy.espn.com/apis/v3/games"
	defaultWriteBaseURL      = "https://lm-api-writes.fantasy.espn.com/apis/v3/games"
	defaultScoreboardBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	defaultGame              = "fba"
	defaultHTTPTimeout       = 15 * time.Second
)

// Fantasy platform headers ESPN expects on authenticated requests.
const (
	headerFantasySource   = "kona"
	headerFantasyPlatform = "kona-PROD-m.fantasy.espn.com-android"
)

// Transaction constants for lineup writes.
const (
	txTypeRoster       = "ROSTER"
	txTypeFutureRoster = "FUTURE_ROSTER"
	txExecutionExecute = "EXECUTE"
)

// lockedCode is the provider's rejection code for a period whose lineup can
// no longer be edited.
const lockedCode = "TRAN_LINEUP_LOCKED"
