// Package timeutil computes task validity windows in civil time. All
// boundaries are defined by the wall clock of the task's timezone, so a
// calendar day spanning a DST transition may be 23 or 25 absolute hours.
package timeutil

import (
	"time"
)

// StartOfDay returns the instant corresponding to 00:00:00.000 local time
// on the calendar day containing t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the instant corresponding to 23:59:59.999 local time on
// the calendar day containing t in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999*int(time.Millisecond), loc)
}

// StartOfWeek returns StartOfDay of the Monday on or before the calendar
// day containing t in loc (ISO weeks, Monday first).
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	daysToMonday := int(local.Weekday()) - 1
	if local.Weekday() == time.Sunday {
		daysToMonday = 6
	}
	monday := local.AddDate(0, 0, -daysToMonday)
	return StartOfDay(monday, loc)
}

// EndOfWeek returns EndOfDay of the Sunday closing the ISO week containing
// t in loc.
func EndOfWeek(t time.Time, loc *time.Location) time.Time {
	sunday := StartOfWeek(t, loc).AddDate(0, 0, 6)
	return EndOfDay(sunday, loc)
}

// IsExpired reports whether the calendar day of now in loc is strictly
// later than the calendar day of dateEnd. The comparison is on zoned
// calendar dates, not instants: a window ending at 23:59 tonight is not
// expired until the local day rolls over.
func IsExpired(dateEnd time.Time, loc *time.Location, now time.Time) bool {
	endY, endM, endD := dateEnd.In(loc).Date()
	nowY, nowM, nowD := now.In(loc).Date()

	endDay := time.Date(endY, endM, endD, 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(nowY, nowM, nowD, 0, 0, 0, 0, time.UTC)
	return nowDay.After(endDay)
}
