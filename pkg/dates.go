package pkg

import "time"

// DayKeyLayout is the "YYYY-MM-DD" calendar day key used in query
// parameters and daily statistics.
const DayKeyLayout = "2006-01-02"

// DayKey formats t as a calendar day key in loc (time.Local when nil).
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(orLocal(loc)).Format(DayKeyLayout)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	loc = orLocal(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseDayKey parses a "YYYY-MM-DD" key as midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, orLocal(loc))
}

// AddDays moves a start-of-day value by n calendar days. The result is
// rebuilt from the civil date, so a day whose midnight was skipped by DST
// does not shift the days around it.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, day.Location())
}

// CivilDay numbers t's calendar day in loc: days since 1970-01-01.
// Consecutive calendar days always differ by exactly one.
func CivilDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(orLocal(loc)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
