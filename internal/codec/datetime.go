package codec

import (
	"database/sql/driver"
	"math"
	"strings"
	"time"
)

// TimeCamp wire layouts.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

var (
	// MaxDate marks a Date that was never populated.
	MaxDate = Date{time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)}
	// MaxTimeOfDay marks a TimeOfDay that was never populated.
	MaxTimeOfDay = TimeOfDay(math.MaxInt64)
)

// Date is a calendar date carried as yyyy-mm-dd.
type Date struct{ time.Time }

// ParseDate decodes a yyyy-mm-dd value.
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return Date{}, &DecodeError{Value: v, Err: err}
	}
	return Date{t}, nil
}

// IsSet reports whether d holds a decoded value rather than MaxDate.
func (d Date) IsSet() bool { return !d.Time.Equal(MaxDate.Time) }

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.IsSet() {
		return quote(""), nil
	}
	return quote(d.String()), nil
}

// UnmarshalJSON leaves d untouched for null and the empty string.
func (d *Date) UnmarshalJSON(data []byte) error {
	v, ok, err := wireValue(data)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return err
	}
	parsed, err := ParseDate(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if !d.IsSet() {
		return nil, nil
	}
	return d.Time, nil
}

// DateTime is a timestamp carried as "yyyy-mm-dd hh:mm:ss" without a zone.
type DateTime struct{ time.Time }

// ParseDateTime decodes a "yyyy-mm-dd hh:mm:ss" value.
func ParseDateTime(v string) (DateTime, error) {
	t, err := time.Parse(DateTimeLayout, strings.TrimSpace(v))
	if err != nil {
		return DateTime{}, &DecodeError{Value: v, Err: err}
	}
	return DateTime{t}, nil
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) { return quote(d.String()), nil }

func (d *DateTime) UnmarshalJSON(data []byte) error {
	v, ok, err := wireValue(data)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return err
	}
	parsed, err := ParseDateTime(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// TimeOfDay is the offset from midnight, carried as hh:mm:ss (or hh:mm).
type TimeOfDay time.Duration

// ParseTimeOfDay decodes hh:mm:ss, falling back to hh:mm.
func ParseTimeOfDay(v string) (TimeOfDay, error) {
	s := strings.TrimSpace(v)
	var lastErr error
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			lastErr = err
			continue
		}
		return TimeOfDay(time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second), nil
	}
	return 0, &DecodeError{Value: v, Err: lastErr}
}

func (t TimeOfDay) IsSet() bool { return t != MaxTimeOfDay }

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration { return time.Duration(t) }

func (t TimeOfDay) String() string { return FormatClock(time.Duration(t)) }

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return quote(""), nil
	}
	return quote(t.String()), nil
}

// UnmarshalJSON leaves t untouched for null and the empty string; TimeCamp
// sends an empty end_time for a timer that is still running.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	v, ok, err := wireValue(data)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return err
	}
	parsed, err := ParseTimeOfDay(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	if !t.IsSet() {
		return nil, nil
	}
	return t.String(), nil
}
