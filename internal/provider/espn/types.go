package espn

// Raw response shapes for the ESPN fantasy v3 API. Only the fields the
// mapper reads are declared.

type leagueResponse struct {
	ScoringPeriodID int              `json:"scoringPeriodId"`
	Status          statusResponse   `json:"status"`
	Settings        settingsResponse `json:"settings"`
	Teams           []teamResponse   `json:"teams"`
}

type statusResponse struct {
	CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int `json:"finalScoringPeriod"`
	FinalMatchupPeriod   int `json:"finalMatchupPeriod"`
}

type settingsResponse struct {
	RosterSettings rosterSettingsResponse `json:"rosterSettings"`
}

type rosterSettingsResponse struct {
	// Keys arrive as strings ("0", "11", ...) even though slot ids are ints.
	LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
}

type teamResponse struct {
	ID     int            `json:"id"`
	Roster rosterResponse `json:"roster"`
}

type rosterResponse struct {
	Entries []rosterEntryResponse `json:"entries"`
}

type rosterEntryResponse struct {
	PlayerID        int                     `json:"playerId"`
	LineupSlotID    int                     `json:"lineupSlotId"`
	PlayerPoolEntry playerPoolEntryResponse `json:"playerPoolEntry"`
}

type playerPoolEntryResponse struct {
	ID           int            `json:"id"`
	InjuryStatus string         `json:"injuryStatus"`
	InjuryDate   string         `json:"injuryDate"`
	Player       playerResponse `json:"player"`
}

type playerResponse struct {
	ID            int            `json:"id"`
	FullName      string         `json:"fullName"`
	ProTeamID     int            `json:"proTeamId"`
	InjuryStatus  string         `json:"injuryStatus"`
	EligibleSlots []int          `json:"eligibleSlots"`
	Stats         []statResponse `json:"stats"`
}

type statResponse struct {
	StatSplitTypeID int      `json:"statSplitTypeId"`
	SeasonID        int      `json:"seasonId"`
	AppliedTotal    *float64 `json:"appliedTotal"`
	AppliedAverage  *float64 `json:"appliedAverage"`
}

// transactionRequest is the lineup write payload.
type transactionRequest struct {
	IsLeagueManager bool              `json:"isLeagueManager"`
	TeamID          int               `json:"teamId"`
	Type            string            `json:"type"`
	MemberID        string            `json:"memberId"`
	ScoringPeriodID int               `json:"scoringPeriodId"`
	ExecutionType   string            `json:"executionType"`
	Items           []transactionItem `json:"items"`
}

type transactionItem struct {
	PlayerID         int    `json:"playerId"`
	Type             string `json:"type"`
	FromLineupSlotID int    `json:"fromLineupSlotId"`
	ToLineupSlotID   int    `json:"toLineupSlotId"`
}

// Public site scoreboard shapes (per-day NBA schedule).

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	Date         string                 `json:"date"`
	Competitions []scoreboardCompetiton `json:"competitions"`
}

type scoreboardCompetiton struct {
	Competitors []scoreboardCompetitor `json:"competitors"`
}

type scoreboardCompetitor struct {
	ID   string             `json:"id"`
	Team scoreboardTeamInfo `json:"team"`
}

type scoreboardTeamInfo struct {
	ID string `json:"id"`
}
