// Package calendarcache persists per-day playing-team sets to disk so
// repeated runs skip the large calendar prefetch.
package calendarcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type entry struct {
	Date    string `json:"date"`
	TeamIDs []int  `json:"teamIds"`
}

// Store reads and writes calendar day files under a base directory.
type Store struct {
	basePath string
}

// NewStore constructs a filesystem-backed cache rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

func (s *Store) path(date string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("calendar-%s.json", date))
}

// Load reads the cached playing-team set for a YYYYMMDD date. The boolean is
// false when the date has no cache entry or the entry is unreadable.
func (s *Store) Load(date string) (map[int]struct{}, bool) {
	if s == nil || date == "" {
		return nil, false
	}

	raw, err := os.ReadFile(s.path(date))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}

	teams := make(map[int]struct{}, len(e.TeamIDs))
	for _, id := range e.TeamIDs {
		teams[id] = struct{}{}
	}
	return teams, true
}

// Store writes the playing-team set for a YYYYMMDD date atomically (temp
// file + rename) so a crashed run never leaves a torn entry.
func (s *Store) Store(date string, teams map[int]struct{}) error {
	if s == nil {
		return nil
	}
	if date == "" {
		return fmt.Errorf("calendarcache: date required")
	}

	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return err
	}

	ids := make([]int, 0, len(teams))
	for id := range teams {
		ids = append(ids, id)
	}

	raw, err := json.Marshal(entry{Date: date, TeamIDs: ids})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.basePath, "calendar-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path(date))
}
