package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecamp-export/internal/codec"
	"timecamp-export/internal/domain"
)

func entry(id, task, desc string, billable bool) domain.TimeEntry {
	e := domain.NewTimeEntry()
	e.ID = id
	e.TaskID = "t" + id
	e.TaskName = task
	e.Description = desc
	e.UserID = "7"
	e.UserName = "Ada"
	e.Billable = codec.ZeroOrOther(billable)
	e.EntryDate = codec.Date{Time: time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)}
	e.StartTime = codec.TimeOfDay(9 * time.Hour)
	e.EndTime = codec.TimeOfDay(10*time.Hour + 30*time.Minute)
	e.Duration = codec.Seconds(90 * time.Minute)
	return e
}

func TestListing_Empty(t *testing.T) {
	assert.Equal(t, []string{"Nothing found!"}, Listing(nil))
	assert.Equal(t, []string{NothingFound}, Listing([]domain.TimeEntry{}))
}

func TestListing_Line(t *testing.T) {
	lines := Listing([]domain.TimeEntry{entry("1", "Build", "x", true), entry("2", "Review", "y", false)})
	require.Len(t, lines, 2)
	assert.Equal(t,
		"1 : Build (t1) : Thursday, January 2, 2020 : 09:00:00 - 10:30:00 : 01:30:00 : Billable : Ada (7).",
		lines[0])
	assert.Contains(t, lines[1], ": Non-Billable :")
}

func TestListing_UnsetFields(t *testing.T) {
	e := domain.NewTimeEntry()
	e.ID = "3"
	assert.Equal(t, "3 :  () :  :  -  : 00:00:00 : Non-Billable :  ().", Line(e))
}

func TestCSV_Legacy(t *testing.T) {
	got := CSV([]domain.TimeEntry{entry("1", "Build", "Wrote code", true)}, false)
	want := "Date,Project Name,Job Name,Work Item,From time,To time,Hours,Description, Mail Id\n" +
		`"02/01/2020","","Build","Wrote code"` + "\n"
	assert.Equal(t, want, got)
}

func TestCSV_EmptyHasHeaderOnly(t *testing.T) {
	got := CSV(nil, true)
	assert.Equal(t, strings.Join(Header, ",")+"\n", got)
}

func TestCSV_OnlyBillable(t *testing.T) {
	in := []domain.TimeEntry{
		entry("1", "A", "a", true),
		entry("2", "B", "b", false),
		entry("3", "C", "c", true),
		entry("4", "D", "d", false),
		entry("5", "E", "e", true),
	}
	lines := strings.Split(strings.TrimSuffix(CSV(in, true), "\n"), "\n")
	require.Len(t, lines, 1+3)
	assert.Contains(t, lines[1], `"A"`)
	assert.Contains(t, lines[2], `"C"`)
	assert.Contains(t, lines[3], `"E"`)

	all := strings.Split(strings.TrimSuffix(CSV(in, false), "\n"), "\n")
	assert.Len(t, all, 1+5)
}

func TestCSV_NoQuoteEscaping(t *testing.T) {
	got := CSV([]domain.TimeEntry{entry("1", "A", `say "hi", bye`, true)}, false)
	assert.Contains(t, got, `"say "hi", bye"`)
}

func TestLayoutComplete(t *testing.T) {
	got := LayoutComplete.Render([]domain.TimeEntry{entry("1", "Build", "Wrote code", true)}, false)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"02/01/2020","","Build","t1","09:00","10:30","1.50","Wrote code",""`, lines[1])
	assert.Len(t, LayoutComplete.Columns, len(LayoutComplete.Header))
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("")
	require.NoError(t, err)
	assert.Equal(t, "legacy", l.Name)

	l, err = LayoutByName("Complete")
	require.NoError(t, err)
	assert.Equal(t, "complete", l.Name)

	_, err = LayoutByName("xml")
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_PropagatesWriterError(t *testing.T) {
	err := WriteCSV(failingWriter{}, LayoutLegacy, []domain.TimeEntry{entry("1", "A", "a", true)}, false)
	require.EqualError(t, err, "disk full")
}
