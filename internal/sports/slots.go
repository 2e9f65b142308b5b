// Package sports resolves provider slot-id numbering per sport. The same
// slot name maps to different integers across sports (basketball IR is 13,
// football IR is 21), so the tables live here as data instead of scattered
// constant comparisons.
package sports

import "fmt"

// SlotTable describes one sport's lineup slot numbering.
type SlotTable struct {
	Sport       string      // provider game key, e.g. "fba"
	ActiveSlots []int       // starting slot types in fill-priority order
	BenchSlot   int
	IRSlot      int
	Names       map[int]string
}

// Basketball slot ids (ESPN fantasy basketball).
const (
	basketballPG    = 0
	basketballSG    = 1
	basketballSF    = 2
	basketballPF    = 3
	basketballC     = 4
	basketballG     = 5
	basketballF     = 6
	basketballUtil  = 11
	basketballBench = 12
	basketballIR    = 13
)

// Basketball returns the built-in ESPN fantasy basketball table.
func Basketball() SlotTable {
	return SlotTable{
		Sport: "fba",
		ActiveSlots: []int{
			basketballPG, basketballSG, basketballSF, basketballPF,
			basketballC, basketballG, basketballF, basketballUtil,
		},
		BenchSlot: basketballBench,
		IRSlot:    basketballIR,
		Names: map[int]string{
			basketballPG:    "PG",
			basketballSG:    "SG",
			basketballSF:    "SF",
			basketballPF:    "PF",
			basketballC:     "C",
			basketballG:     "G",
			basketballF:     "F",
			basketballUtil:  "UTIL",
			basketballBench: "Bench",
			basketballIR:    "IR",
		},
	}
}

// Football returns the built-in ESPN fantasy football table. Included so the
// engine is not hardwired to basketball numbering.
func Football() SlotTable {
	return SlotTable{
		Sport:       "ffl",
		ActiveSlots: []int{0, 2, 4, 6, 16, 17, 23},
		BenchSlot:   20,
		IRSlot:      21,
		Names: map[int]string{
			0: "QB", 2: "RB", 4: "WR", 6: "TE", 16: "D/ST", 17: "K",
			23: "FLEX", 20: "Bench", 21: "IR",
		},
	}
}

// SlotName returns the display label for a slot id.
func (t SlotTable) SlotName(slotID int) string {
	if name, ok := t.Names[slotID]; ok {
		return name
	}
	return fmt.Sprintf("Slot%d", slotID)
}

// ExpandActiveSlots repeats each active slot type by its configured count,
// preserving the table's fill-priority order. Slot types absent from counts
// (or with non-positive counts) produce no entries.
func (t SlotTable) ExpandActiveSlots(counts map[int]int) []int {
	expanded := make([]int, 0, len(t.ActiveSlots))
	for _, slotID := range t.ActiveSlots {
		for i := 0; i < counts[slotID]; i++ {
			expanded = append(expanded, slotID)
		}
	}
	return expanded
}

// Resolve returns the built-in table for a provider game key or its
// friendly name.
func Resolve(sport string) (SlotTable, error) {
	switch sport {
	case "fba", "basketball", "":
		return Basketball(), nil
	case "ffl", "football":
		return Football(), nil
	default:
		return SlotTable{}, fmt.Errorf("sports: no slot table for %q", sport)
	}
}
