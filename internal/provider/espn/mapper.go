package espn

import (
	"strconv"
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

func mapLeague(raw leagueResponse, slots sports.SlotTable) (domain.LeagueSettings, []domain.Player) {
	return mapSettings(raw, slots), mapPlayers(raw)
}

func mapSettings(raw leagueResponse, slots sports.SlotTable) domain.LeagueSettings {
	counts := make(map[int]int, len(raw.Settings.RosterSettings.LineupSlotCounts))
	for key, count := range raw.Settings.RosterSettings.LineupSlotCounts {
		if id, err := strconv.Atoi(key); err == nil {
			counts[id] = count
		}
	}

	current := raw.ScoringPeriodID
	if current == 0 {
		current = raw.Status.CurrentMatchupPeriod
	}
	final := raw.Status.FinalScoringPeriod
	if final == 0 {
		final = raw.Status.FinalMatchupPeriod
	}

	return domain.LeagueSettings{
		CurrentScoringPeriodID: current,
		FinalScoringPeriodID:   final,
		IRSlotCount:            counts[slots.IRSlot],
		RosterSlots:            counts,
	}
}

func mapPlayers(raw leagueResponse) []domain.Player {
	var players []domain.Player
	for _, team := range raw.Teams {
		for _, entry := range team.Roster.Entries {
			players = append(players, mapPlayer(team.ID, entry))
		}
	}
	return players
}

func mapPlayer(teamID int, entry rosterEntryResponse) domain.Player {
	pool := entry.PlayerPoolEntry
	info := pool.Player

	playerID := info.ID
	if playerID == 0 {
		playerID = entry.PlayerID
	}
	name := info.FullName
	if name == "" {
		name = "Player " + strconv.Itoa(playerID)
	}

	eligible := info.EligibleSlots
	if eligible == nil {
		eligible = []int{}
	}

	status := pool.InjuryStatus
	if status == "" {
		status = info.InjuryStatus
	}

	return domain.Player{
		PlayerID:        playerID,
		Name:            name,
		TeamID:          teamID,
		ProTeamID:       info.ProTeamID,
		InjuryStatus:    mapInjuryStatus(status),
		LineupSlotID:    entry.LineupSlotID,
		EligibleSlots:   eligible,
		ProjectedPoints: mapProjectedPoints(info.Stats),
		EstimatedReturn: parseReturnDate(pool.InjuryDate),
	}
}

// mapInjuryStatus normalizes the provider's abbreviated variants onto the
// canonical enum.
func mapInjuryStatus(raw string) domain.InjuryStatus {
	switch raw {
	case "O", "IL", string(domain.StatusOut):
		return domain.StatusOut
	case string(domain.StatusActive), string(domain.StatusDoubtful),
		string(domain.StatusQuestionable), string(domain.StatusProbable):
		return domain.InjuryStatus(raw)
	default:
		return domain.StatusUnknown
	}
}

// mapProjectedPoints picks the season-average line from the player's stat
// splits, falling back to the applied total and then to zero.
func mapProjectedPoints(stats []statResponse) float64 {
	for _, s := range stats {
		if s.StatSplitTypeID != 1 || s.SeasonID == 0 || s.AppliedTotal == nil {
			continue
		}
		if s.AppliedAverage != nil {
			return *s.AppliedAverage
		}
		return *s.AppliedTotal
	}
	return 0
}

func parseReturnDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	return nil
}

func mapRosterSlots(team teamResponse) map[int]int {
	slots := make(map[int]int, len(team.Roster.Entries))
	for _, entry := range team.Roster.Entries {
		playerID := entry.PlayerID
		if playerID == 0 {
			playerID = entry.PlayerPoolEntry.Player.ID
		}
		if playerID != 0 {
			slots[playerID] = entry.LineupSlotID
		}
	}
	return slots
}

func mapScoreboardTeams(raw scoreboardResponse) map[int]struct{} {
	teams := make(map[int]struct{})
	for _, event := range raw.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		for _, competitor := range event.Competitions[0].Competitors {
			id, ok := parseTeamID(competitor.ID)
			if !ok {
				id, ok = parseTeamID(competitor.Team.ID)
			}
			if ok {
				teams[id] = struct{}{}
			}
		}
	}
	return teams
}

// EarliestTipoff returns the start time of the first game in a scoreboard
// day, when the payload carries parseable event dates.
func earliestTipoff(raw scoreboardResponse) (time.Time, bool) {
	var earliest time.Time
	for _, event := range raw.Events {
		start, err := parseEventDate(event.Date)
		if err != nil {
			continue
		}
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
		}
	}
	return earliest, !earliest.IsZero()
}

func parseEventDate(raw string) (time.Time, error) {
	// The site API emits minute-precision Zulu timestamps.
	if parsed, err := time.Parse("2006-01-02T15:04Z07:00", raw); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, raw)
}
