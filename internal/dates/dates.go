// Package dates centralizes calendar handling. All "is it a new day" logic in
// the application goes through these helpers so that day boundaries are always
// computed at local midnight, never by raw millisecond arithmetic across a DST
// change.
package dates

import (
	"fmt"
	"regexp"
	"time"

	"github.com/habitforge/habitforge/internal/constants"
)

var ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FormatYMD formats a time as a YYYY-MM-DD string in the time's own location.
func FormatYMD(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseYMD parses a YYYY-MM-DD string to midnight in the given location.
func ParseYMD(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if !ymdPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ValidYMD reports whether s is a well-formed YYYY-MM-DD date.
func ValidYMD(s string) bool {
	_, err := ParseYMD(s, time.UTC)
	return err == nil
}

// StartOfDay returns midnight of t's calendar day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a to b. Both are
// normalized to local midnight first, so a DST transition inside the interval
// cannot skew the count.
func DaysBetween(a, b time.Time) int {
	start := StartOfDay(a)
	end := StartOfDay(b.In(a.Location()))
	hours := end.Sub(start).Hours()
	// Round, don't truncate: a 23h or 25h "day" still counts as one day.
	if hours < 0 {
		return int(hours/24 - 0.5)
	}
	return int(hours/24 + 0.5)
}

// WeekStart returns midnight of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the preceding Monday's week
	}
	return d.AddDate(0, 0, -offset)
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// InWeek reports whether the date string falls inside the calendar week
// (Monday through Sunday) containing ref. Malformed dates are ignored.
func InWeek(ymd string, ref time.Time) bool {
	d, err := ParseYMD(ymd, ref.Location())
	if err != nil {
		return false
	}
	start := WeekStart(ref)
	end := start.AddDate(0, 0, 7)
	return !d.Before(start) && d.Before(end)
}
