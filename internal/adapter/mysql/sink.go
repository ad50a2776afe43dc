package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"timecamp-export/internal/domain"
	"timecamp-export/internal/migrate"
)

// Client implements ports.Sink by upserting into timecamp_time_entries.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection and applies pending migrations.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := migrate.Run(ctx, db, migrate.DialectMySQL, log); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

const upsertEntry = `
INSERT INTO timecamp_time_entries
  (id, duration_sec, user_id, user_name, task_id, task_name, last_modified,
   entry_date, start_time, end_time, description, billable,
   addons_external_id, invoice_id, color, synced_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  duration_sec=VALUES(duration_sec),
  user_id=VALUES(user_id),
  user_name=VALUES(user_name),
  task_id=VALUES(task_id),
  task_name=VALUES(task_name),
  last_modified=VALUES(last_modified),
  entry_date=VALUES(entry_date),
  start_time=VALUES(start_time),
  end_time=VALUES(end_time),
  description=VALUES(description),
  billable=VALUES(billable),
  addons_external_id=VALUES(addons_external_id),
  invoice_id=VALUES(invoice_id),
  color=VALUES(color),
  synced_at=VALUES(synced_at);
`

// SyncEntries upserts entries keyed by TimeCamp id in one transaction.
func (c *Client) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, upsertEntry)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, migrate.EntryRow(e, now)...); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql sink upserted entries", slog.Int("count", len(entries)))
	return nil
}

// Close closes the underlying DB.
func (c *Client) Close() error { return c.db.Close() }
