package lineup

import (
	"sort"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

// Priority tiers, lower is better. "Injured" means OUT only; DOUBTFUL,
// QUESTIONABLE, PROBABLE and unknown all count as healthy here.
const (
	tierHealthyPlaying = 1
	tierInjuredPlaying = 2
	tierHealthyIdle    = 3
	tierInjuredIdle    = 4
)

// DayInput carries everything the optimizer needs for a single scoring period.
type DayInput struct {
	// ActivePlayers are rostered players not assigned to IR by the
	// season-level IR decision.
	ActivePlayers []domain.Player
	// IRPlayers are the players assigned to IR slots.
	IRPlayers []domain.Player
	// PlayingTeamIDs holds the pro teams with a game this period.
	PlayingTeamIDs map[int]struct{}
	// ScoringPeriodID is the period being optimized.
	ScoringPeriodID int
	// CurrentPeriodID is the league's "today" pointer.
	CurrentPeriodID int
	// CurrentSlots maps player id to their slot as of this specific period,
	// from a fresh roster fetch. Missing entries fall back to the player's
	// last known slot.
	CurrentSlots map[int]int
	// ActiveSlots lists starting slot instances in fill order (one entry per
	// starting spot, slot types repeated by their configured counts).
	ActiveSlots []int
	// Slots is the sport's slot numbering table.
	Slots sports.SlotTable
}

// EffectiveSlot resolves a player's slot for a specific period. The fresh
// per-period map wins; the player's last known slot is the fallback when the
// fetch had no entry for them. Fallback order matters: the fresh map reflects
// server-side moves (locks, auto-IR) the stale field cannot.
func EffectiveSlot(fresh map[int]int, p domain.Player) int {
	if slot, ok := fresh[p.PlayerID]; ok {
		return slot
	}
	return p.LineupSlotID
}

// OptimizeDay produces the minimal ordered change list for one scoring
// period: starters filled greedily by tier then projected points, everyone
// else benched, IR players pinned to IR. An empty result means the lineup is
// already optimal for that day.
//
// Future periods carry two IR restrictions the provider enforces: a player
// already sitting in an IR slot cannot be moved out, and no player may be
// moved into IR. Both kinds of item are suppressed when ScoringPeriodID is
// beyond CurrentPeriodID.
func OptimizeDay(in DayInput) []domain.LineupChange {
	future := in.ScoringPeriodID > in.CurrentPeriodID

	type ranked struct {
		player domain.Player
		tier   int
		slot   int // effective current slot for this period
	}

	candidates := make([]ranked, 0, len(in.ActivePlayers))
	for _, p := range in.ActivePlayers {
		slot := EffectiveSlot(in.CurrentSlots, p)
		if future && slot == in.Slots.IRSlot {
			// Locked into IR for this period; not movable, not fillable.
			continue
		}
		candidates = append(candidates, ranked{player: p, tier: tier(p, in.PlayingTeamIDs), slot: slot})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].tier != candidates[j].tier {
			return candidates[i].tier < candidates[j].tier
		}
		return candidates[i].player.ProjectedPoints > candidates[j].player.ProjectedPoints
	})

	used := make(map[int]bool, len(candidates))
	type fill struct {
		slotID int
		idx    int // index into candidates
	}
	fills := make([]fill, 0, len(in.ActiveSlots))

	for _, slotID := range in.ActiveSlots {
		for i, c := range candidates {
			if used[c.player.PlayerID] {
				continue
			}
			if !c.player.EligibleFor(slotID) {
				continue
			}
			used[c.player.PlayerID] = true
			fills = append(fills, fill{slotID: slotID, idx: i})
			break
		}
		// No eligible player left: the slot stays empty, nothing emitted.
	}

	items := make([]domain.LineupChange, 0, len(candidates)+len(in.IRPlayers))
	emit := func(playerID, from, to int) {
		if from == to {
			return
		}
		items = append(items, domain.LineupChange{
			PlayerID:   playerID,
			Type:       domain.ChangeLineup,
			FromSlotID: from,
			ToSlotID:   to,
		})
	}

	for _, f := range fills {
		c := candidates[f.idx]
		emit(c.player.PlayerID, c.slot, f.slotID)
	}

	for _, c := range candidates {
		if !used[c.player.PlayerID] {
			emit(c.player.PlayerID, c.slot, in.Slots.BenchSlot)
		}
	}

	// IR moves are rejected by the provider on non-today periods, so they are
	// only submitted for today or the past.
	if !future {
		for _, p := range in.IRPlayers {
			emit(p.PlayerID, EffectiveSlot(in.CurrentSlots, p), in.Slots.IRSlot)
		}
	}

	return items
}

func tier(p domain.Player, playing map[int]struct{}) int {
	_, hasGame := playing[p.ProTeamID]
	injured := p.Injured()

	switch {
	case !injured && hasGame:
		return tierHealthyPlaying
	case injured && hasGame:
		return tierInjuredPlaying
	case !injured:
		return tierHealthyIdle
	default:
		return tierInjuredIdle
	}
}
