package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/habitforge/habitforge/internal/models"
)

func sampleState() *models.GameState {
	state := models.NewGameState()
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	state.Profile.Username = "tester"
	state.Profile.Archetype = "WRATH"
	state.Profile.XP = 340
	state.Profile.Level = 4
	state.Profile.CurrentStreak = 5
	state.Profile.LongestStreak = 9
	state.Profile.DayStarted = &now
	state.Profile.CurrentDay = 6
	state.Profile.Achievements = map[string]bool{"firstBlood": true}
	state.Habits = []models.Habit{
		{ID: "h1", Name: "Exercise", Type: models.HabitPower, XP: 20, Frequency: models.FrequencyDaily, Streak: 5, CreatedAt: now},
		{ID: "h2", Name: "No sugar", Type: models.HabitDemon, XP: 30, Frequency: models.FrequencyDaily, Relapses: 2, CreatedAt: now},
	}
	state.History = []models.DayRecord{
		{Date: "2026-08-31", DayNumber: 5, XPEarned: 50, IsPerfect: true, SuccessfulCount: 2, TotalCount: 2},
	}
	return state
}

func assertStatesEqual(t *testing.T, want, got *models.GameState) {
	t.Helper()
	if got.Profile.Username != want.Profile.Username ||
		got.Profile.XP != want.Profile.XP ||
		got.Profile.CurrentStreak != want.Profile.CurrentStreak {
		t.Errorf("profile mismatch: got %+v, want %+v", got.Profile, want.Profile)
	}
	if len(got.Habits) != len(want.Habits) {
		t.Fatalf("habits = %d, want %d", len(got.Habits), len(want.Habits))
	}
	if got.Habits[1].Relapses != want.Habits[1].Relapses {
		t.Errorf("habit relapses = %d, want %d", got.Habits[1].Relapses, want.Habits[1].Relapses)
	}
	if len(got.History) != 1 || !got.History[0].IsPerfect {
		t.Errorf("history not preserved: %+v", got.History)
	}
	if !got.Profile.Achievements["firstBlood"] {
		t.Error("achievements not preserved")
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitforge.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	want := sampleState()
	if err := store.SaveState(want); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, err := reopened.GetState()
	if err != nil {
		t.Fatalf("GetState() failed: %v", err)
	}
	assertStatesEqual(t, want, got)
}

func TestJSONStoreInitTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitforge.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("second Init() should fail")
	}
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() without init should fail")
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitforge.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("Load() of corrupt file should fail")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitforge.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer store.Close()

	// A fresh store yields an empty state.
	fresh, err := store.GetState()
	if err != nil {
		t.Fatalf("GetState() failed: %v", err)
	}
	if fresh.Profile.Started() {
		t.Error("fresh state should not be started")
	}

	want := sampleState()
	if err := store.SaveState(want); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	// Saving again exercises the upsert path.
	want.Profile.XP = 360
	if err := store.SaveState(want); err != nil {
		t.Fatalf("second SaveState() failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetState()
	if err != nil {
		t.Fatalf("GetState() failed: %v", err)
	}
	assertStatesEqual(t, want, got)
}

func TestSQLiteStoreLoadUninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() without init should fail")
	}
}

func TestSnapshotMigratesUnversionedPayload(t *testing.T) {
	// Pre-versioning snapshots have no version field at all.
	data, err := json.Marshal(map[string]interface{}{
		"state": sampleState(),
	})
	if err != nil {
		t.Fatal(err)
	}

	state, err := decodeSnapshot(data)
	if err != nil {
		t.Fatalf("decodeSnapshot() failed: %v", err)
	}
	if state.Profile.Username != "tester" {
		t.Errorf("migrated username = %q, want %q", state.Profile.Username, "tester")
	}
}

func TestSnapshotRejectsNewerVersion(t *testing.T) {
	data, err := encodeSnapshot(sampleState())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	snap.Version = SnapshotVersion + 1
	newer, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := decodeSnapshot(newer); err == nil {
		t.Error("decodeSnapshot() of a newer version should fail")
	}
}

func TestSnapshotNilStateRejected(t *testing.T) {
	if _, err := decodeSnapshot([]byte(`{"version":1}`)); err == nil {
		t.Error("decodeSnapshot() without state should fail")
	}
}
