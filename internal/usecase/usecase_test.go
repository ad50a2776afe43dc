package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecamp-export/internal/domain"
	"timecamp-export/internal/ports"
)

type fakeTimeCamp struct {
	entries []domain.TimeEntry
	err     error
	got     Request
}

func (f *fakeTimeCamp) ListTimeEntries(ctx context.Context, from, to time.Time, filter domain.Filter) ([]domain.TimeEntry, error) {
	f.got = Request{From: from, To: to, Filter: filter}
	return f.entries, f.err
}

type fakeSink struct {
	calls   int
	written []domain.TimeEntry
	err     error
}

func (s *fakeSink) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	s.calls++
	s.written = append(s.written, entries...)
	return s.err
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

var window = Request{
	From:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	To:     time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
	Filter: domain.Filter{TaskIDs: []string{"5"}},
}

func TestExport_FetchDedupes(t *testing.T) {
	tc := &fakeTimeCamp{entries: []domain.TimeEntry{
		{ID: "1", Description: "first"},
		{ID: "1", Description: "second"},
		{ID: "2"},
	}}
	uc := &ExportUseCase{Log: discard(), TimeCamp: tc}

	got, err := uc.Fetch(context.Background(), window)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Description)
	assert.Equal(t, window, tc.got)
}

func TestExport_FetchWrapsError(t *testing.T) {
	boom := errors.New("boom")
	uc := &ExportUseCase{Log: discard(), TimeCamp: &fakeTimeCamp{err: boom}}
	_, err := uc.Fetch(context.Background(), window)
	require.ErrorIs(t, err, boom)
}

func TestSync_WritesEverySink(t *testing.T) {
	a, b := &fakeSink{}, &fakeSink{}
	uc := &SyncUseCase{
		Log:      discard(),
		TimeCamp: &fakeTimeCamp{entries: []domain.TimeEntry{{ID: "1"}, {ID: "2"}}},
		Sinks:    []ports.Sink{a, b},
	}
	n, err := uc.Run(context.Background(), window)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, a.written, 2)
	assert.Len(t, b.written, 2)
}

func TestSync_EmptySkipsSinks(t *testing.T) {
	s := &fakeSink{}
	uc := &SyncUseCase{Log: discard(), TimeCamp: &fakeTimeCamp{entries: []domain.TimeEntry{}}, Sinks: []ports.Sink{s}}
	n, err := uc.Run(context.Background(), window)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, s.calls)
}

func TestSync_SinkErrorStops(t *testing.T) {
	failing := &fakeSink{err: errors.New("db down")}
	after := &fakeSink{}
	uc := &SyncUseCase{
		Log:      discard(),
		TimeCamp: &fakeTimeCamp{entries: []domain.TimeEntry{{ID: "1"}}},
		Sinks:    []ports.Sink{failing, after},
	}
	_, err := uc.Run(context.Background(), window)
	require.ErrorContains(t, err, "db down")
	assert.Zero(t, after.calls)
}

func TestSync_RequiresSinks(t *testing.T) {
	uc := &SyncUseCase{Log: discard(), TimeCamp: &fakeTimeCamp{}}
	_, err := uc.Run(context.Background(), window)
	require.Error(t, err)
}
