package training

import "time"

// WeekStart returns the Monday 00:00 of the week t falls into, in UTC.
// The whole system buckets weeks Monday-first; keep it that way so that
// weekly distance and the rollup chart agree with each other.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// DayStart truncates t to its calendar day in UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
