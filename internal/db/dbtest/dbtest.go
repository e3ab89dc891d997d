// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"flight_favorites/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated SQLite database stored under t.TempDir.
// The connection is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := db.Open(sqlite.Open(db.SQLiteDSN(path)), false)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// One connection serialises SQLite writers instead of surfacing SQLITE_BUSY.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("test db pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
