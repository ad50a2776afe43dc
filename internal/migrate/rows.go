package migrate

import (
	"time"

	"timecamp-export/internal/domain"
)

// EntryRow returns the timecamp_time_entries column values for e, in table
// column order. Codec fields bind through their driver.Valuer methods.
func EntryRow(e domain.TimeEntry, syncedAt time.Time) []any {
	return []any{
		e.ID,
		e.Duration,
		e.UserID,
		e.UserName,
		e.TaskID,
		e.TaskName,
		e.LastModified,
		e.EntryDate,
		e.StartTime,
		e.EndTime,
		e.Description,
		e.Billable,
		e.AddonsExternalID,
		e.InvoiceID,
		e.Color,
		syncedAt,
	}
}
