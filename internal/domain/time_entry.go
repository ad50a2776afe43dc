package domain

import (
	"encoding/json"

	"timecamp-export/internal/codec"
)

// TimeEntry represents a TimeCamp time entry in the domain.
// Equality is identity: two entries are the same entry when their IDs match,
// see SameEntry.
type TimeEntry struct {
	ID               string            `json:"id"`
	Duration         codec.Seconds     `json:"duration"`
	UserID           string            `json:"user_id"`
	UserName         string            `json:"user_name"`
	TaskID           string            `json:"task_id"`
	TaskName         string            `json:"name"`
	LastModified     codec.DateTime    `json:"last_modify"`
	EntryDate        codec.Date        `json:"date"`
	StartTime        codec.TimeOfDay   `json:"start_time"`
	EndTime          codec.TimeOfDay   `json:"end_time"`
	Description      string            `json:"description"`
	Billable         codec.ZeroOrOther `json:"billable"`
	AddonsExternalID string            `json:"addons_external_id"` // "0" when not linked
	InvoiceID        string            `json:"invoiceId"`
	Color            codec.Color       `json:"color"`
}

// NewTimeEntry returns an entry whose date and clock fields hold their
// "never populated" sentinels.
func NewTimeEntry() TimeEntry {
	return TimeEntry{
		EntryDate: codec.MaxDate,
		StartTime: codec.MaxTimeOfDay,
		EndTime:   codec.MaxTimeOfDay,
	}
}

// UnmarshalJSON decodes one TimeCamp entry object. Absent and null
// properties keep the NewTimeEntry defaults. A malformed property fails the
// whole entry with a *codec.DecodeError naming the property.
func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &codec.DecodeError{Value: string(data), Err: err}
	}
	out := NewTimeEntry()

	texts := []struct {
		name string
		dst  *string
	}{
		{"id", &out.ID},
		{"user_id", &out.UserID},
		{"user_name", &out.UserName},
		{"task_id", &out.TaskID},
		{"name", &out.TaskName},
		{"description", &out.Description},
		{"addons_external_id", &out.AddonsExternalID},
		{"invoiceId", &out.InvoiceID},
	}
	for _, f := range texts {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		s, err := codec.Text(v)
		if err != nil {
			return codec.WithField(err, f.name)
		}
		*f.dst = s
	}

	coded := []struct {
		name string
		dst  json.Unmarshaler
	}{
		{"duration", &out.Duration},
		{"last_modify", &out.LastModified},
		{"date", &out.EntryDate},
		{"start_time", &out.StartTime},
		{"end_time", &out.EndTime},
		{"billable", &out.Billable},
		{"color", &out.Color},
	}
	for _, f := range coded {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := f.dst.UnmarshalJSON(v); err != nil {
			return codec.WithField(err, f.name)
		}
	}

	*e = out
	return nil
}

// BillableLabel returns "Billable" or "Non-Billable".
func (e TimeEntry) BillableLabel() string {
	if e.Billable {
		return "Billable"
	}
	return "Non-Billable"
}

// SameEntry reports whether a and b are the same TimeCamp entry. Only the ID
// is compared; content drift between two fetches is ignored.
func SameEntry(a, b TimeEntry) bool { return a.ID == b.ID }

// Dedupe returns entries without later duplicates under same, keeping the
// first occurrence and the original order.
func Dedupe(entries []TimeEntry, same func(a, b TimeEntry) bool) []TimeEntry {
	out := make([]TimeEntry, 0, len(entries))
next:
	for _, e := range entries {
		for _, kept := range out {
			if same(kept, e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// OnlyBillable returns the billable entries in their original order.
func OnlyBillable(entries []TimeEntry) []TimeEntry {
	out := make([]TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Billable {
			out = append(out, e)
		}
	}
	return out
}
