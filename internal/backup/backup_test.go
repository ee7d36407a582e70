package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/habitforge/habitforge/internal/constants"
)

func makeTestDB(t *testing.T, dir string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "habitforge.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE marker (value TEXT)"); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO marker (value) VALUES ('original')"); err != nil {
		t.Fatalf("failed to seed test table: %v", err)
	}
	return dbPath
}

func readMarker(t *testing.T, dbPath string) string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var value string
	if err := db.QueryRow("SELECT value FROM marker").Scan(&value); err != nil {
		t.Fatalf("failed to read marker: %v", err)
	}
	return value
}

func TestCreateAndList(t *testing.T) {
	dir := t.TempDir()
	dbPath := makeTestDB(t, dir)
	m := NewManager(dbPath)

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("List() = %d backups, want 1", len(backups))
	}
	if backups[0].Path != path {
		t.Errorf("List() path = %q, want %q", backups[0].Path, path)
	}
	if backups[0].Size == 0 {
		t.Error("backup size = 0, want non-empty file")
	}
}

func TestCreateNoDatabase(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.Create(); err == nil {
		t.Error("Create() without a database should fail")
	}
}

func TestCreatePrunesOldBackups(t *testing.T) {
	dir := t.TempDir()
	dbPath := makeTestDB(t, dir)
	m := NewManager(dbPath)

	backupDir := m.BackupDir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < constants.MaxBackups+3; i++ {
		name := fmt.Sprintf("%s202601%02d-000000%s", constants.BackupFilePrefix, i+1, constants.BackupFileSuffix)
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("stale"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("after prune, List() = %d backups, want %d", len(backups), constants.MaxBackups)
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := makeTestDB(t, dir)
	m := NewManager(dbPath)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE marker SET value = 'changed'"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if got := readMarker(t, dbPath); got != "original" {
		t.Errorf("after restore, marker = %q, want %q", got, "original")
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	dir := t.TempDir()
	dbPath := makeTestDB(t, dir)
	m := NewManager(dbPath)

	bad := filepath.Join(dir, "bad.db")
	if err := os.WriteFile(bad, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(bad); err == nil {
		t.Error("Restore() with invalid backup should fail")
	}
}
