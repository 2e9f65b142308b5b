// Package lineup holds the pure decision engine: IR slot assignment, the
// per-day starter/bench optimizer, and the remaining-season schedule builder.
package lineup

import (
	"sort"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

// IRAssignment annotates one injured player with the slot they should occupy.
type IRAssignment struct {
	Player       domain.Player
	AssignedSlot int
}

// AssignIRSlots partitions a team's OUT players between the IR slot and the
// bench. Players who will be out the longest occupy the scarce IR slots,
// freeing active roster spots for shorter-term absences.
//
// Sort order among OUT players:
//  1. already occupying IR stays ahead (avoids bouncing a placed player)
//  2. no estimated return date (indefinitely out) ahead of any dated player
//  3. later return date first
//
// Ties keep input order; the sort must stay stable. Non-OUT statuses are
// never IR candidates.
func AssignIRSlots(players []domain.Player, irCount int, slots sports.SlotTable) []IRAssignment {
	injured := make([]domain.Player, 0, len(players))
	for _, p := range players {
		if p.InjuryStatus == domain.StatusOut {
			injured = append(injured, p)
		}
	}

	sort.SliceStable(injured, func(i, j int) bool {
		a, b := injured[i], injured[j]

		aInIR := a.LineupSlotID == slots.IRSlot
		bInIR := b.LineupSlotID == slots.IRSlot
		if aInIR != bInIR {
			return aInIR
		}

		if a.EstimatedReturn == nil || b.EstimatedReturn == nil {
			return a.EstimatedReturn == nil && b.EstimatedReturn != nil
		}
		return a.EstimatedReturn.After(*b.EstimatedReturn)
	})

	assignments := make([]IRAssignment, 0, len(injured))
	for i, p := range injured {
		slot := slots.BenchSlot
		if i < irCount {
			slot = slots.IRSlot
		}
		assignments = append(assignments, IRAssignment{Player: p, AssignedSlot: slot})
	}
	return assignments
}

// IRPlayerIDs returns the set of player ids that should occupy IR slots.
func IRPlayerIDs(players []domain.Player, irCount int, slots sports.SlotTable) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, a := range AssignIRSlots(players, irCount, slots) {
		if a.AssignedSlot == slots.IRSlot {
			ids[a.Player.PlayerID] = struct{}{}
		}
	}
	return ids
}
