// Package provider defines how upstream fantasy data is fetched and written.
// Raw provider JSON never crosses this boundary; implementations normalize
// into the domain model before returning.
package provider

import (
	"context"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
)

// Auth carries the provider session credentials.
type Auth struct {
	EspnS2 string
	SWID   string
}

// Submission is one day's lineup write.
type Submission struct {
	TeamID          int
	ScoringPeriodID int
	Items           []domain.LineupChange
	// Future selects the provider's future-roster transaction type instead
	// of the same-day one.
	Future bool
}

// LeagueReader fetches league settings and the full rostered player list.
type LeagueReader interface {
	FetchLeague(ctx context.Context, leagueID, season int, auth Auth) (domain.LeagueSettings, []domain.Player, error)
}

// RosterReader fetches a team's slot occupancy as of a specific scoring
// period. The result maps player id to lineup slot id.
type RosterReader interface {
	FetchRosterSlots(ctx context.Context, leagueID, season, period, teamID int, auth Auth) (map[int]int, error)
}

// CalendarReader fetches the set of pro team ids with a game on the given
// 8-digit (YYYYMMDD) date.
type CalendarReader interface {
	FetchCalendarDay(ctx context.Context, date string) (map[int]struct{}, error)
}

// LineupWriter submits a day's lineup changes.
type LineupWriter interface {
	SubmitLineup(ctx context.Context, leagueID, season int, auth Auth, sub Submission) error
}

// FantasyProvider combines all provider capabilities.
type FantasyProvider interface {
	LeagueReader
	RosterReader
	CalendarReader
	LineupWriter
}
