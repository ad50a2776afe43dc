package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed sql/mysql/*.sql sql/sqlite3/*.sql
var migrationsFS embed.FS

// Dialect selects both the goose dialect and the embedded migration
// directory under sql/.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite3"
)

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// Run applies pending migrations for dialect on db. Versions are tracked by
// goose in its own goose_db_version table.
func Run(ctx context.Context, db *sql.DB, dialect Dialect, log *slog.Logger) error {
	switch dialect {
	case DialectMySQL, DialectSQLite:
	default:
		return fmt.Errorf("migrate: unsupported dialect %q", dialect)
	}

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: log.With(slog.String("component", "migrate"), slog.String("dialect", string(dialect)))})
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migrate: set dialect: %w", err)
	}

	dir := path.Join("sql", string(dialect))
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate: applying %s: %w", dir, err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return err
	}
	log.Debug("migrations applied", slog.String("dialect", string(dialect)), slog.Int64("version", version))
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct{ log *slog.Logger }

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
