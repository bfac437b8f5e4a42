package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/udaan-com/service-scaler/api/v1"
)

func mustLocalNow(t *testing.T, hhmm string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Now().In(loc)
	parsed, err := time.ParseInLocation("15:04", hhmm, loc)
	require.NoError(t, err)
	return time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc)
}

func TestMatch_ZonedTime(t *testing.T) {
	now := mustLocalNow(t, "10:00")

	ok, err := Match("09:00+05:30", "11:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.True(t, ok, "now inside window should match")

	ok, err = Match("11:00+05:30", "12:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.False(t, ok, "now before window should not match")

	ok, err = Match("08:00+05:30", "09:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.False(t, ok, "now after window should not match")
}

func TestMatch_ZonedTime_MidnightCrossing(t *testing.T) {
	now := mustLocalNow(t, "23:30")

	ok, err := Match("22:00+05:30", "02:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.True(t, ok, "window crossing midnight should match just before midnight")

	now = mustLocalNow(t, "01:30")
	ok, err = Match("22:00+05:30", "02:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.True(t, ok, "window crossing midnight should match just after midnight")
}

func TestMatch_ZonedTime_BoundariesAreStrict(t *testing.T) {
	now := mustLocalNow(t, "09:00")
	ok, err := Match("09:00+05:30", "11:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.False(t, ok, "exact boundary equality must not match")
}

func TestMatch_ZonedTime_EqualFromToIsZeroWidthAndNeverMatches(t *testing.T) {
	now := mustLocalNow(t, "10:00")
	ok, err := Match("10:00+05:30", "10:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.False(t, ok, "from == to is a zero-width window, not a full-day one")
}

func TestMatch_ZonedDateTime(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2026-07-31T10:00:00+05:30")
	require.NoError(t, err)

	ok, err := Match("2026-07-31T09:00:00+05:30", "2026-07-31T11:00:00+05:30", v1.ZonedDateTime, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("2026-08-01T09:00:00+05:30", "2026-08-01T11:00:00+05:30", v1.ZonedDateTime, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiffFromNow_ZonedTime_RollsForward(t *testing.T) {
	now := mustLocalNow(t, "23:00")
	diff, err := DiffFromNow("01:00+05:30", v1.ZonedTime, now)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, diff)
}

func TestDiffFromNow_ZonedDateTime_CanBeNegative(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2026-07-31T10:00:00+05:30")
	require.NoError(t, err)
	diff, err := DiffFromNow("2026-07-31T09:00:00+05:30", v1.ZonedDateTime, now)
	require.NoError(t, err)
	assert.Equal(t, -1*time.Hour, diff)
}
