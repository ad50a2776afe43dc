package migrate

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "export.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun_SQLiteCreatesTable(t *testing.T) {
	db := openSQLite(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	require.NoError(t, Run(ctx, db, DialectSQLite, log))
	// second run is a no-op
	require.NoError(t, Run(ctx, db, DialectSQLite, log))

	var name string
	err := db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name='timecamp_time_entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "timecamp_time_entries", name)
}

func TestRun_UnknownDialect(t *testing.T) {
	db := openSQLite(t)
	err := Run(context.Background(), db, Dialect("postgres"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorContains(t, err, "unsupported dialect")
}
