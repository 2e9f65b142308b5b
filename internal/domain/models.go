package domain

import "time"

// InjuryStatus mirrors the provider's player injury designations.
type InjuryStatus string

const (
	StatusActive       InjuryStatus = "ACTIVE"
	StatusOut          InjuryStatus = "OUT"
	StatusDoubtful     InjuryStatus = "DOUBTFUL"
	StatusQuestionable InjuryStatus = "QUESTIONABLE"
	StatusProbable     InjuryStatus = "PROBABLE"
	StatusUnknown      InjuryStatus = ""
)

// Player is the normalized roster entry shape the engine operates on.
// EligibleSlots is never nil; callers get an empty slice when eligibility
// is unknown.
type Player struct {
	PlayerID        int          `json:"playerId"`
	Name            string       `json:"name"`
	TeamID          int          `json:"teamId"`
	ProTeamID       int          `json:"proTeamId"` // 0 = free agent / none
	InjuryStatus    InjuryStatus `json:"injuryStatus"`
	LineupSlotID    int          `json:"lineupSlotId"`
	EligibleSlots   []int        `json:"eligibleSlots"`
	ProjectedPoints float64      `json:"projectedPoints"`
	EstimatedReturn *time.Time   `json:"estimatedReturn,omitempty"` // nil = indefinitely out
}

// Injured reports whether the player counts as injured for lineup decisions.
// Only OUT qualifies; DOUBTFUL/QUESTIONABLE/PROBABLE/unknown are treated as
// fully healthy.
func (p Player) Injured() bool {
	return p.InjuryStatus == StatusOut
}

// EligibleFor reports whether the player can occupy the given slot.
func (p Player) EligibleFor(slotID int) bool {
	for _, s := range p.EligibleSlots {
		if s == slotID {
			return true
		}
	}
	return false
}

// LeagueSettings is the subset of league configuration the engine needs.
type LeagueSettings struct {
	CurrentScoringPeriodID int         `json:"currentScoringPeriodId"`
	FinalScoringPeriodID   int         `json:"finalScoringPeriodId"`
	IRSlotCount            int         `json:"irSlotCount"`
	RosterSlots            map[int]int `json:"rosterSlots"` // slot id -> starting spots of that type
}

// GameDay pairs a scoring period with the set of pro teams playing that day.
type GameDay struct {
	ScoringPeriodID int              `json:"scoringPeriodId"`
	PlayingTeamIDs  map[int]struct{} `json:"-"`
	Date            string           `json:"date"` // YYYY-MM-DD display label
}

// HasGame reports whether the given pro team plays on this day.
func (d GameDay) HasGame(proTeamID int) bool {
	_, ok := d.PlayingTeamIDs[proTeamID]
	return ok
}

// ChangeType tags a lineup change item. The provider currently only accepts
// plain lineup moves.
type ChangeType string

const ChangeLineup ChangeType = "LINEUP"

// LineupChange is a single proposed slot move for one player.
type LineupChange struct {
	PlayerID   int        `json:"playerId"`
	Type       ChangeType `json:"type"`
	FromSlotID int        `json:"fromLineupSlotId"`
	ToSlotID   int        `json:"toLineupSlotId"`
}
