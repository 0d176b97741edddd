package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"stoxway.com/licserver/internal/sqlite"
)

func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return NewTestDBAt(t, filepath.Join(t.TempDir(), "test.db"))
}

func NewTestDBAt(t *testing.T, dbPath string) *sqlx.DB {
	t.Helper()

	// busy_timeout in the DSN covers every pooled connection; concurrent
	// first-use tests hammer the same row and must wait out locks instead
	// of failing with SQLITE_BUSY
	db, err := sqlx.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Register cleanup immediately
	t.Cleanup(func() {
		db.Close()
	})

	// DELETE mode for tests
	if _, err := db.Exec(`PRAGMA journal_mode=DELETE;`); err != nil {
		t.Fatalf("set journal mode: %v", err)
	}

	// Run migrations
	if err := sqlite.RunMigrations(db.DB); err != nil {
		// Ensure DB closes even on failure
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	return db
}
