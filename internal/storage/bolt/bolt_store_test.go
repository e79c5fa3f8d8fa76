package bolt

import (
	"path/filepath"
	"testing"

	"github.com/circadianhq/circadian/pkg/circadian"
	"go.etcd.io/bbolt"
)

func newTestStore(t *testing.T) (*Store, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return store, cleanup
}

func TestLoadState_Absent(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	_, found, err := store.LoadState("local")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if found {
		t.Fatal("expected no state for fresh store")
	}
}

func TestSaveAndLoadState(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	st := &circadian.UserState{
		Name:       "Ada",
		Chronotype: circadian.ChronotypeLark,
		WakeUpTime: "06:30",
		Bedtime:    "22:30",
		Streak:     3,
		SyncScore:  57,
		Anchors: []circadian.AnchorRecord{
			{ID: "morning-light", Completed: true},
			{ID: "first-meal", Completed: false},
		},
	}
	if err := store.SaveState("local", st); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	got, found, err := store.LoadState("local")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !found {
		t.Fatal("expected state to be found")
	}
	if got.Name != "Ada" || got.WakeUpTime != "06:30" || got.Streak != 3 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if len(got.Anchors) != 2 || !got.Anchors[0].Completed {
		t.Fatalf("anchors mismatch: %+v", got.Anchors)
	}
}

func TestLoadState_UserIsolation(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.SaveState("alice", &circadian.UserState{Name: "Alice"}); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	_, found, err := store.LoadState("bob")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if found {
		t.Fatal("bob should have no state")
	}
}

func TestLoadState_CorruptRecordDiscarded(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	err := store.db.Update(func(tx *bbolt.Tx) error {
		b, err := userBucket(tx, "local")
		if err != nil {
			return err
		}
		return b.Put([]byte(stateKey), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("failed to plant corrupt record: %v", err)
	}

	_, found, err := store.LoadState("local")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if found {
		t.Fatal("corrupt record should read as absent")
	}
}

func TestGetAPIKey_NonExistent(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	_, found, err := store.GetAPIKey("nonexistent-key")
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if found {
		t.Fatal("expected key not found, but found=true")
	}
}

func TestGetAPIKey_Valid(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	err := store.PutAPIKey("test-hash", "user-123")
	if err != nil {
		t.Fatalf("PutAPIKey failed: %v", err)
	}

	userID, found, err := store.GetAPIKey("test-hash")
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if !found {
		t.Fatal("expected key to be found")
	}
	if userID != "user-123" {
		t.Fatalf("expected userID 'user-123', got '%s'", userID)
	}
}
