package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldLeagueID   = "league_id"
	FieldTeamID     = "team_id"
	FieldSeason     = "season"
	FieldPeriod     = "scoring_period"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldItems      = "items"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
)
