package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/dmello/typetrack/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is configured with foreign keys enabled and WAL mode.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on&_journal_mode=WAL")
	require.NoError(t, err)

	names, err := db.MigrationFiles()
	require.NoError(t, err)

	for _, name := range names {
		sqlText, err := db.MigrationSQL(name)
		require.NoError(t, err, "failed to read migration %s", name)

		_, err = sqlDB.Exec(sqlText)
		require.NoError(t, err, "failed to apply migration %s", name)
	}

	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
