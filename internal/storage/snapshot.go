package storage

import (
	"encoding/json"
	"fmt"

	"github.com/habitforge/habitforge/internal/models"
)

// SnapshotName is the fixed key the game snapshot is stored under.
const SnapshotName = "habitforge-state"

// SnapshotVersion is the current payload version. Bump it together with a new
// case in migrateSnapshot when the persisted shape changes.
const SnapshotVersion = 1

// Snapshot is the versioned blob written to the local store.
type Snapshot struct {
	Version int               `json:"version"`
	State   *models.GameState `json:"state"`
}

// encodeSnapshot serializes the state at the current version.
func encodeSnapshot(state *models.GameState) ([]byte, error) {
	data, err := json.Marshal(Snapshot{Version: SnapshotVersion, State: state})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot parses a stored blob and migrates older payload versions to
// the current shape. A corrupted blob is an error, never silently partial
// state: the caller decides between surfacing it and resetting to empty.
func decodeSnapshot(data []byte) (*models.GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := migrateSnapshot(&snap); err != nil {
		return nil, err
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot contains no state")
	}
	if snap.State.Profile.Achievements == nil {
		snap.State.Profile.Achievements = map[string]bool{}
	}
	return snap.State, nil
}

// migrateSnapshot upgrades an older payload in place.
func migrateSnapshot(snap *Snapshot) error {
	switch {
	case snap.Version > SnapshotVersion:
		return fmt.Errorf("snapshot version %d is newer than supported version %d - please upgrade the application", snap.Version, SnapshotVersion)
	case snap.Version < 1:
		// Pre-versioned data carries the current shape with a missing
		// version field; stamp it and fall through.
		snap.Version = 1
	}
	return nil
}
