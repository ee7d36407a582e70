package storage

import "github.com/habitforge/habitforge/internal/models"

// Provider persists the local game snapshot.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Snapshot
	GetState() (*models.GameState, error)
	SaveState(*models.GameState) error

	// Utils
	GetConfigPath() string
}
