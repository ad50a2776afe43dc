package ports

import (
	"context"
	"time"

	"timecamp-export/internal/domain"
)

// TimeCampClient fetches time entries from TimeCamp.
type TimeCampClient interface {
	ListTimeEntries(ctx context.Context, from, to time.Time, filter domain.Filter) ([]domain.TimeEntry, error)
}

// Sink receives decoded entries and writes them to an export target.
// Sinks are write-only: nothing written is read back by this tool.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
}
