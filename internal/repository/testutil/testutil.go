// Package testutil provides database helpers for repository tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/db"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/snowflake"
)

// NewTestDB opens a fresh migrated database in a per-test temp dir and
// makes sure ID generation works.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if err := snowflake.Init(1); err != nil {
		t.Fatalf("init snowflake: %v", err)
	}

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
