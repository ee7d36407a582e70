package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/habitforge/habitforge/internal/migration"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/migrations"
)

// SQLiteStore keeps the snapshot in a local sqlite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitforge init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.newRunner().Validate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// Migrate applies pending schema migrations, reporting progress through logFn.
func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return 0, fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}
	return s.newRunner().ApplyMigrations(logFn)
}

func (s *SQLiteStore) newRunner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The embedded tree always contains sqlite/; a failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded sqlite migrations missing: %v", err))
	}
	return migration.NewRunner(s.db, subFS)
}

func (s *SQLiteStore) runMigrations() error {
	_, err := s.newRunner().ApplyMigrations(nil)
	return err
}

// GetState returns the stored snapshot, or a fresh empty state when none has
// been written yet.
func (s *SQLiteStore) GetState() (*models.GameState, error) {
	var data string
	row := s.db.QueryRow(`SELECT data FROM snapshots WHERE name = ?`, SnapshotName)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewGameState(), nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decodeSnapshot([]byte(data))
}

func (s *SQLiteStore) SaveState(state *models.GameState) error {
	data, err := encodeSnapshot(state)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots (name, version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		SnapshotName, SnapshotVersion, string(data), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
