package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"timecamp-export/internal/codec"
	"timecamp-export/internal/domain"
)

// Header is the payroll import header row.
var Header = []string{
	"Date", "Project Name", "Job Name", "Work Item",
	"From time", "To time", "Hours", "Description", " Mail Id",
}

// Column extracts one CSV field from an entry.
type Column struct {
	Name  string
	Value func(domain.TimeEntry) string
}

// Layout pairs a header row with the columns emitted for every entry.
// The two lists are independent: a layout may emit fewer columns than its
// header declares.
type Layout struct {
	Name    string
	Header  []string
	Columns []Column
}

var (
	dateColumn        = Column{"Date", func(e domain.TimeEntry) string { return csvDate(e) }}
	projectColumn     = Column{"Project Name", func(domain.TimeEntry) string { return "" }}
	jobColumn         = Column{"Job Name", func(e domain.TimeEntry) string { return e.TaskName }}
	descriptionColumn = Column{"Description", func(e domain.TimeEntry) string { return e.Description }}
)

// LayoutLegacy reproduces the historical export byte for byte: a nine column
// header over rows carrying only date, an empty project, task name and
// description.
var LayoutLegacy = Layout{
	Name:    "legacy",
	Header:  Header,
	Columns: []Column{dateColumn, projectColumn, jobColumn, descriptionColumn},
}

// LayoutComplete fills every header column.
var LayoutComplete = Layout{
	Name:   "complete",
	Header: Header,
	Columns: []Column{
		dateColumn,
		projectColumn,
		jobColumn,
		{"Work Item", func(e domain.TimeEntry) string { return e.TaskID }},
		{"From time", func(e domain.TimeEntry) string { return hhmm(e.StartTime) }},
		{"To time", func(e domain.TimeEntry) string { return hhmm(e.EndTime) }},
		{"Hours", func(e domain.TimeEntry) string { return fmt.Sprintf("%.2f", e.Duration.Hours()) }},
		descriptionColumn,
		{" Mail Id", func(domain.TimeEntry) string { return "" }},
	},
}

// LayoutByName resolves "legacy" or "complete". The empty name is legacy.
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutLegacy.Name:
		return LayoutLegacy, nil
	case LayoutComplete.Name:
		return LayoutComplete, nil
	}
	return Layout{}, fmt.Errorf("unknown csv layout %q (want legacy or complete)", name)
}

// Write streams the CSV document to w. Every field is wrapped in double
// quotes without escaping; rows end in LF.
func (l Layout) Write(w io.Writer, entries []domain.TimeEntry, onlyBillable bool) error {
	if onlyBillable {
		entries = domain.OnlyBillable(entries)
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(l.Header, ",") + "\n")
	fields := make([]string, len(l.Columns))
	for _, e := range entries {
		for i, col := range l.Columns {
			fields[i] = `"` + col.Value(e) + `"`
		}
		bw.WriteString(strings.Join(fields, ",") + "\n")
	}
	return bw.Flush()
}

// Render returns the CSV document as a string.
func (l Layout) Render(entries []domain.TimeEntry, onlyBillable bool) string {
	var b strings.Builder
	_ = l.Write(&b, entries, onlyBillable)
	return b.String()
}

// CSV renders entries with LayoutLegacy.
func CSV(entries []domain.TimeEntry, onlyBillable bool) string {
	return LayoutLegacy.Render(entries, onlyBillable)
}

// WriteCSV streams entries to w with the given layout.
func WriteCSV(w io.Writer, layout Layout, entries []domain.TimeEntry, onlyBillable bool) error {
	return layout.Write(w, entries, onlyBillable)
}

func csvDate(e domain.TimeEntry) string {
	if !e.EntryDate.IsSet() {
		return ""
	}
	return e.EntryDate.Format("02/01/2006")
}

func hhmm(t codec.TimeOfDay) string {
	if !t.IsSet() {
		return ""
	}
	s := t.String()
	if i := strings.LastIndexByte(s, ':'); i > 0 {
		return s[:i]
	}
	return s
}
