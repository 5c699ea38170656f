package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSaveAndListRuns(t *testing.T) {
	store := openTestStore(t)

	records := []RunRecord{
		{Scenario: "parity", Frames: 180, TraceHash: 0x94db7b2925cfad14, FinalX: 555, FinalY: 436, Jumped: 1, Landed: 2},
		{Scenario: "parity", Frames: 180, TraceHash: 0x94db7b2925cfad14, FinalX: 555, FinalY: 436, Jumped: 1, Landed: 2},
		{Scenario: "idle-drop", Frames: 60, TraceHash: 0xdeadbeef, FinalX: 28, FinalY: 98, Landed: 1},
	}
	for _, r := range records {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	parity, err := store.Runs("parity", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(parity) != 2 {
		t.Fatalf("expected 2 parity runs, got %d", len(parity))
	}
	if parity[0].TraceHash != 0x94db7b2925cfad14 {
		t.Errorf("trace hash round-trip failed: got %x", parity[0].TraceHash)
	}
	if parity[0].FinalX != 555 || parity[0].Landed != 2 {
		t.Errorf("unexpected record: %+v", parity[0])
	}

	all, err := store.Runs("", 10)
	if err != nil {
		t.Fatalf("Runs(all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 runs across scenarios, got %d", len(all))
	}
}

func TestRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(RunRecord{Scenario: "sandbox", Frames: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.Runs("sandbox", 3)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected limit of 3, got %d", len(runs))
	}
	// Newest first: the last insert carries the highest frame count.
	if runs[0].Frames != 4 {
		t.Errorf("expected newest run first, got frames=%d", runs[0].Frames)
	}
}

func TestLastHash(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LastHash("parity"); err != nil || ok {
		t.Errorf("expected no hash for empty archive, got ok=%v err=%v", ok, err)
	}

	// High bit set: must survive the signed integer column.
	const hash = uint64(0xffee000000000001)
	if _, err := store.SaveRun(RunRecord{Scenario: "parity", Frames: 1, TraceHash: hash}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, ok, err := store.LastHash("parity")
	if err != nil {
		t.Fatalf("LastHash() failed: %v", err)
	}
	if !ok || got != hash {
		t.Errorf("LastHash = %x ok=%v, want %x true", got, ok, hash)
	}
}
