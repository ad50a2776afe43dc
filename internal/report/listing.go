package report

import (
	"fmt"

	"timecamp-export/internal/codec"
	"timecamp-export/internal/domain"
)

// NothingFound is the single listing line for an empty result.
const NothingFound = "Nothing found!"

// LongDateLayout is the long date form used in listings.
const LongDateLayout = "Monday, January 2, 2006"

// Line formats one entry as
// "<id> : <task> (<task id>) : <long date> : <start> - <end> : <duration> : <billable label> : <user> (<user id>)."
func Line(e domain.TimeEntry) string {
	return fmt.Sprintf("%s : %s (%s) : %s : %s - %s : %s : %s : %s (%s).",
		e.ID,
		e.TaskName, e.TaskID,
		longDate(e.EntryDate),
		clock(e.StartTime), clock(e.EndTime),
		codec.FormatClock(e.Duration.Duration()),
		e.BillableLabel(),
		e.UserName, e.UserID,
	)
}

// Listing returns one Line per entry, or a single NothingFound line.
func Listing(entries []domain.TimeEntry) []string {
	if len(entries) == 0 {
		return []string{NothingFound}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, Line(e))
	}
	return out
}

func longDate(d codec.Date) string {
	if !d.IsSet() {
		return ""
	}
	return d.Format(LongDateLayout)
}

func clock(t codec.TimeOfDay) string {
	if !t.IsSet() {
		return ""
	}
	return t.String()
}
