package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/habitforge/habitforge/internal/models"
)

// JSONStore keeps the snapshot in a single JSON file. Used where sqlite is
// unavailable and in tests.
type JSONStore struct {
	path  string
	state *models.GameState
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.state = models.NewGameState()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitforge init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	state, err := decodeSnapshot(data)
	if err != nil {
		return err
	}
	s.state = state
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) GetState() (*models.GameState, error) {
	if s.state == nil {
		if err := s.Load(); err != nil {
			return nil, err
		}
	}
	return s.state, nil
}

func (s *JSONStore) SaveState(state *models.GameState) error {
	s.state = state
	return s.save()
}

func (s *JSONStore) save() error {
	snap := Snapshot{Version: SnapshotVersion, State: s.state}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write via temp file so a crash cannot leave a half-written snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
