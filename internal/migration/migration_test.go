package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":       {Data: []byte("CREATE TABLE one (id INTEGER PRIMARY KEY);")},
		"002_add_widget.sql": {Data: []byte("CREATE TABLE two (id INTEGER PRIMARY KEY);")},
	}
	r := NewRunner(db, fsys)

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// Re-running is a no-op.
	applied, err = r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations() failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}

	if err := r.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestApplyMigrationsPartial(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE one (id INTEGER PRIMARY KEY);")},
	}
	if _, err := NewRunner(db, fsys).ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}

	// A second migration appears later; only it should run.
	fsys["002_more.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE two (id INTEGER PRIMARY KEY);")}
	applied, err := NewRunner(db, fsys).ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestBadMigrationRollsBack(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE one (id INTEGER PRIMARY KEY);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}
	r := NewRunner(db, fsys)

	applied, err := r.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations() with broken SQL should fail")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 (the good migration)", applied)
	}

	version, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1 after rollback", version)
	}
}

func TestInvalidFilename(t *testing.T) {
	fsys := fstest.MapFS{
		"init.sql": {Data: []byte("CREATE TABLE one (id INTEGER PRIMARY KEY);")},
	}
	if _, err := NewRunner(testDB(t), fsys).ReadMigrationFiles(); err == nil {
		t.Error("ReadMigrationFiles() should reject filenames without a version")
	}
}

func TestDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"001_b.sql": {Data: []byte("CREATE TABLE b (id INTEGER PRIMARY KEY);")},
	}
	if _, err := NewRunner(testDB(t), fsys).ReadMigrationFiles(); err == nil {
		t.Error("ReadMigrationFiles() should reject duplicate versions")
	}
}

func TestValidateNewerDatabase(t *testing.T) {
	db := testDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE one (id INTEGER PRIMARY KEY);")},
	}
	r := NewRunner(db, fsys)
	if err := r.EnsureSchemaVersionTable(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (9)"); err != nil {
		t.Fatal(err)
	}

	if err := r.Validate(); err == nil {
		t.Error("Validate() should reject a database newer than the migration set")
	}
	if _, err := r.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations() should reject a database newer than the migration set")
	}
}
