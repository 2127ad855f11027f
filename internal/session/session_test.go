package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	sess := &Session{}
	sess.SetToken("tok-abc", "mom@example.com")

	if err := store.Save(sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Token != "tok-abc" || loaded.Email != "mom@example.com" {
		t.Errorf("loaded session = %+v", loaded)
	}
	if !loaded.IsAuthenticated() {
		t.Error("expected authenticated session")
	}
}

func TestStoreLoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.IsAuthenticated() {
		t.Error("missing file should yield empty session")
	}
}

func TestStoreSaveUsesOwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if err := store.Save(&Session{Token: "tok"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	if err := store.Save(&Session{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected session file removed")
	}

	// Clearing again is not an error
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}
