package prefstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadMissingPreference(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Load("unknown-video")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected ok=false for an unknown video")
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("vid-1", true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	hidden, ok, err := store.Load("vid-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok || !hidden {
		t.Errorf("Load = (%v, %v), want (true, true)", hidden, ok)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("vid-1", true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("vid-1", false); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	hidden, ok, err := store.Load("vid-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok || hidden {
		t.Errorf("Load = (%v, %v), want (false, true)", hidden, ok)
	}
}

func TestPreferencesAreIndependentPerVideo(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("vid-1", true); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, ok, _ := store.Load("vid-2"); ok {
		t.Error("vid-2 should have no stored preference")
	}
}
