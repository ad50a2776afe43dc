package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeAny(t *testing.T) {
	got, err := ParseTimeAny("2020-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTimeAny("2020-01-31T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 31, 8, 0, 0, 0, time.UTC), got)

	_, err = ParseTimeAny("31.01.2020")
	require.ErrorContains(t, err, "expected RFC3339 or YYYY-MM-DD")
}

func TestRange_Defaults(t *testing.T) {
	now := time.Date(2020, 2, 14, 15, 0, 0, 0, time.UTC)
	from, to, err := Range("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2020, 2, 14, 0, 0, 0, 0, time.UTC), to)

	from, to, err = Range("2020-01-01", "2020-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), to)

	_, _, err = Range("bad", "", now)
	require.Error(t, err)
}
