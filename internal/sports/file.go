package sports

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileTable is the on-disk (YAML) shape of a slot table override.
type fileTable struct {
	Sport       string         `yaml:"sport"`
	ActiveSlots []int          `yaml:"active_slots"`
	BenchSlot   *int           `yaml:"bench_slot"`
	IRSlot      *int           `yaml:"ir_slot"`
	Names       map[int]string `yaml:"names"`
}

type fileConfig struct {
	Tables []fileTable `yaml:"tables"`
}

// LoadFile reads slot table overrides from a YAML file and merges them over
// the built-in tables. Unknown sports in the file become fully custom tables
// and must therefore specify bench_slot and ir_slot.
func LoadFile(path string) (map[string]SlotTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sports: read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("sports: parse config: %w", err)
	}

	tables := map[string]SlotTable{
		"fba": Basketball(),
		"ffl": Football(),
	}

	for _, ft := range cfg.Tables {
		if ft.Sport == "" {
			return nil, fmt.Errorf("sports: table entry missing sport key")
		}
		base, known := tables[ft.Sport]
		if !known {
			if ft.BenchSlot == nil || ft.IRSlot == nil {
				return nil, fmt.Errorf("sports: custom table %q must set bench_slot and ir_slot", ft.Sport)
			}
			base = SlotTable{Sport: ft.Sport, Names: map[int]string{}}
		}
		if len(ft.ActiveSlots) > 0 {
			base.ActiveSlots = ft.ActiveSlots
		}
		if ft.BenchSlot != nil {
			base.BenchSlot = *ft.BenchSlot
		}
		if ft.IRSlot != nil {
			base.IRSlot = *ft.IRSlot
		}
		for id, name := range ft.Names {
			base.Names[id] = name
		}
		tables[ft.Sport] = base
	}

	return tables, nil
}
