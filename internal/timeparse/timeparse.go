// Package timeparse parses the range bounds accepted by the CLI, the HTTP
// server and the Lambda handler.
package timeparse

import (
	"fmt"
	"time"
)

var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseTimeAny parses s as RFC 3339 or a bare date (midnight UTC).
func ParseTimeAny(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range acceptedLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected RFC3339 or YYYY-MM-DD: %w", s, lastErr)
}

// Range parses optional from/to bounds. A missing to defaults to today,
// a missing from to the first day of to's month.
func Range(from, to string, now time.Time) (time.Time, time.Time, error) {
	var (
		start, end time.Time
		err        error
	)
	if to == "" {
		y, m, d := now.UTC().Date()
		end = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else if end, err = ParseTimeAny(to); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from == "" {
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else if start, err = ParseTimeAny(from); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
