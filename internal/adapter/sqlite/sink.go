package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"timecamp-export/internal/domain"
	"timecamp-export/internal/migrate"
)

// ErrLocked is returned when another process holds the export file.
var ErrLocked = errors.New("sqlite: export file is locked by another process")

// Client implements ports.Sink on a local SQLite export file. It holds an
// exclusive lock on "<path>.lock" until Close.
type Client struct {
	db   *sql.DB
	lock *flock.Flock
	path string
	log  *slog.Logger
}

// NewClient locks path, opens it as a SQLite database and applies pending
// migrations. It fails with ErrLocked when another process holds the file.
func NewClient(ctx context.Context, path string, log *slog.Logger) (*Client, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("sqlite: lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	// one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate.Run(ctx, db, migrate.DialectSQLite, log); err != nil {
		db.Close()
		lock.Unlock()
		return nil, err
	}
	return &Client{db: db, lock: lock, path: path, log: log}, nil
}

const upsertEntry = `
INSERT INTO timecamp_time_entries
  (id, duration_sec, user_id, user_name, task_id, task_name, last_modified,
   entry_date, start_time, end_time, description, billable,
   addons_external_id, invoice_id, color, synced_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  duration_sec=excluded.duration_sec,
  user_id=excluded.user_id,
  user_name=excluded.user_name,
  task_id=excluded.task_id,
  task_name=excluded.task_name,
  last_modified=excluded.last_modified,
  entry_date=excluded.entry_date,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  description=excluded.description,
  billable=excluded.billable,
  addons_external_id=excluded.addons_external_id,
  invoice_id=excluded.invoice_id,
  color=excluded.color,
  synced_at=excluded.synced_at;
`

// SyncEntries upserts entries keyed by TimeCamp id in one transaction.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := c.transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertEntry)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, migrate.EntryRow(e, now)...); err != nil {
				return fmt.Errorf("upsert entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info("sqlite sink upserted entries", slog.Int("count", len(entries)), slog.String("path", c.path))
	return nil
}

func (c *Client) transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database and releases the file lock.
func (c *Client) Close() error {
	return errors.Join(c.db.Close(), c.lock.Unlock())
}
