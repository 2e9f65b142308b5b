package lineup

import (
	"testing"
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return &parsed
}

func TestAssignIRSlotsOnlyOutPlayersAreCandidates(t *testing.T) {
	slots := sports.Basketball()
	players := []domain.Player{
		{PlayerID: 1, InjuryStatus: domain.StatusOut, LineupSlotID: slots.BenchSlot},
		{PlayerID: 2, InjuryStatus: domain.StatusDoubtful},
		{PlayerID: 3, InjuryStatus: domain.StatusQuestionable},
		{PlayerID: 4, InjuryStatus: domain.StatusUnknown},
		{PlayerID: 5, InjuryStatus: domain.StatusActive},
	}

	got := AssignIRSlots(players, 2, slots)
	if len(got) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(got))
	}
	if got[0].Player.PlayerID != 1 || got[0].AssignedSlot != slots.IRSlot {
		t.Fatalf("unexpected assignment %+v", got[0])
	}
}

func TestAssignIRSlotsCapacity(t *testing.T) {
	slots := sports.Basketball()
	players := []domain.Player{
		{PlayerID: 1, InjuryStatus: domain.StatusOut},
		{PlayerID: 2, InjuryStatus: domain.StatusOut},
		{PlayerID: 3, InjuryStatus: domain.StatusOut},
	}

	for _, tc := range []struct {
		irCount int
		wantIR  int
	}{
		{irCount: 0, wantIR: 0},
		{irCount: 2, wantIR: 2},
		{irCount: 5, wantIR: 3},
	} {
		ids := IRPlayerIDs(players, tc.irCount, slots)
		if len(ids) != tc.wantIR {
			t.Fatalf("irCount=%d: expected %d IR players, got %d", tc.irCount, tc.wantIR, len(ids))
		}
	}
}

func TestAssignIRSlotsOrdering(t *testing.T) {
	slots := sports.Basketball()

	// Dated player currently on IR, indefinite player on bench, short-term
	// dated player on bench. With two slots the current occupant stays and
	// the indefinite absence takes the second slot.
	players := []domain.Player{
		{PlayerID: 10, InjuryStatus: domain.StatusOut, LineupSlotID: slots.IRSlot, EstimatedReturn: datePtr(t, "2025-03-01")},
		{PlayerID: 11, InjuryStatus: domain.StatusOut, LineupSlotID: slots.BenchSlot},
		{PlayerID: 12, InjuryStatus: domain.StatusOut, LineupSlotID: slots.BenchSlot, EstimatedReturn: datePtr(t, "2025-02-10")},
	}

	got := AssignIRSlots(players, 2, slots)
	if got[0].Player.PlayerID != 10 || got[0].AssignedSlot != slots.IRSlot {
		t.Fatalf("expected current IR occupant first, got %+v", got[0])
	}
	if got[1].Player.PlayerID != 11 || got[1].AssignedSlot != slots.IRSlot {
		t.Fatalf("expected indefinite absence second, got %+v", got[1])
	}
	if got[2].Player.PlayerID != 12 || got[2].AssignedSlot != slots.BenchSlot {
		t.Fatalf("expected dated player benched, got %+v", got[2])
	}
}

func TestAssignIRSlotsLaterReturnDateFirst(t *testing.T) {
	slots := sports.Basketball()
	players := []domain.Player{
		{PlayerID: 1, InjuryStatus: domain.StatusOut, EstimatedReturn: datePtr(t, "2025-01-05")},
		{PlayerID: 2, InjuryStatus: domain.StatusOut, EstimatedReturn: datePtr(t, "2025-04-20")},
	}

	ids := IRPlayerIDs(players, 1, slots)
	if _, ok := ids[2]; !ok {
		t.Fatalf("expected later return date in IR, got %v", ids)
	}
}

func TestAssignIRSlotsStable(t *testing.T) {
	slots := sports.Basketball()
	ret := datePtr(t, "2025-02-01")
	players := []domain.Player{
		{PlayerID: 1, InjuryStatus: domain.StatusOut, EstimatedReturn: ret},
		{PlayerID: 2, InjuryStatus: domain.StatusOut, EstimatedReturn: ret},
		{PlayerID: 3, InjuryStatus: domain.StatusOut, EstimatedReturn: ret},
	}

	first := AssignIRSlots(players, 1, slots)
	for i := 0; i < 10; i++ {
		again := AssignIRSlots(players, 1, slots)
		for j := range first {
			if first[j].Player.PlayerID != again[j].Player.PlayerID {
				t.Fatalf("ordering changed between runs at index %d", j)
			}
		}
	}
	// Equal ranks keep input order.
	if first[0].Player.PlayerID != 1 {
		t.Fatalf("expected input order preserved, got %d first", first[0].Player.PlayerID)
	}
}
