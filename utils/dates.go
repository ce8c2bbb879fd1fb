package utils

import "time"

// DateKey renders t as the YYYY-MM-DD form used for booking dates. ISO
// date strings compare correctly as plain strings.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the most recent Sunday.
func StartOfWeek(t time.Time) time.Time {
	t = BeginningOfDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}
