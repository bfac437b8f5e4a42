// Package timewindow parses and evaluates the two time-window flavors a
// ServiceScaler's TimeRange entries can use: a recurring daily ZonedTime
// window, and a one-shot absolute ZonedDateTime window.
package timewindow

import (
	"fmt"
	"time"

	v1 "github.com/udaan-com/service-scaler/api/v1"
)

// zonedTimeLayout matches "HH:MM±HH:MM" prefixed with a "DD-MM-YY" date, the
// same stamp shape the reconciler's ZonedTime windows are authored in.
const zonedTimeLayout = "02-01-06 15:04-07:00"

const zonedTimeDateLayout = "02-01-06"

// parseZonedTime parses a bare "HH:MM±HH:MM" string by anchoring it to
// today's date in now's location.
func parseZonedTime(ts string, now time.Time) (time.Time, error) {
	dateStr := now.In(now.Location()).Format(zonedTimeDateLayout)
	parsed, err := time.Parse(zonedTimeLayout, dateStr+" "+ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("timewindow: parsing zoned time %q: %w", ts, err)
	}
	return parsed, nil
}

// parseZonedDateTime parses an absolute RFC3339 timestamp.
func parseZonedDateTime(ts string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("timewindow: parsing zoned date-time %q: %w", ts, err)
	}
	return parsed, nil
}

func parse(ts string, kind v1.TimeRangeKind, now time.Time) (time.Time, error) {
	switch kind {
	case v1.ZonedTime:
		return parseZonedTime(ts, now)
	case v1.ZonedDateTime:
		return parseZonedDateTime(ts)
	default:
		return time.Time{}, fmt.Errorf("timewindow: unknown kind %q", kind)
	}
}

// Match reports whether now falls strictly inside (from, to). For ZonedTime,
// a to that lands strictly before from is treated as crossing midnight: now
// matches when it is after today's from (the window runs to tomorrow's to)
// or before today's to (the window started at yesterday's from). A to equal
// to from yields a zero-width window that never matches.
func Match(from, to string, kind v1.TimeRangeKind, now time.Time) (bool, error) {
	fromTs, err := parse(from, kind, now)
	if err != nil {
		return false, err
	}
	toTs, err := parse(to, kind, now)
	if err != nil {
		return false, err
	}
	if kind == v1.ZonedTime && toTs.Before(fromTs) {
		lateToday := now.After(fromTs) && now.Before(toTs.Add(24*time.Hour))
		earlyToday := now.After(fromTs.Add(-24*time.Hour)) && now.Before(toTs)
		return lateToday || earlyToday, nil
	}
	return now.After(fromTs) && now.Before(toTs), nil
}

// DiffFromNow returns the signed duration from now until ts. For ZonedTime,
// a ts that has already passed today is rolled forward to tomorrow, so the
// result is always non-negative. For ZonedDateTime the result may be
// negative, meaning ts is in the past.
func DiffFromNow(ts string, kind v1.TimeRangeKind, now time.Time) (time.Duration, error) {
	parsed, err := parse(ts, kind, now)
	if err != nil {
		return 0, err
	}
	if kind == v1.ZonedTime && parsed.Before(now) {
		parsed = parsed.Add(24 * time.Hour)
	}
	return parsed.Sub(now), nil
}
