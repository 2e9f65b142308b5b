package calendarcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	teams := map[int]struct{}{1: {}, 14: {}, 30: {}}
	if err := store.Store("20250110", teams); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	got, ok := store.Load("20250110")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 teams, got %v", got)
	}
	for id := range teams {
		if _, present := got[id]; !present {
			t.Fatalf("team %d missing from loaded set", id)
		}
	}
}

func TestLoadMissingDate(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, ok := store.Load("20250101"); ok {
		t.Fatal("expected miss for absent date")
	}
}

func TestLoadCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path := filepath.Join(dir, "calendar-20250102.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, ok := store.Load("20250102"); ok {
		t.Fatal("corrupt entry should read as a miss")
	}
}

func TestStoreEmptySet(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Store("20250111", nil); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	got, ok := store.Load("20250111")
	if !ok || len(got) != 0 {
		t.Fatalf("expected empty cached set, got %v ok=%v", got, ok)
	}
}
