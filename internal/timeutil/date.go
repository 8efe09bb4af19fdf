package timeutil

import (
	"time"
)

// Common layouts for API formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// DateOnly strips the time-of-day portion from t, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the current date at midnight in the local timezone.
func Today() time.Time {
	return DateOnly(time.Now())
}

// AddDays returns the date n days from t; n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DayDiff returns the number of whole days from b to a (a minus b),
// ignoring the time-of-day of both arguments. Dates are compared in UTC
// so DST transitions cannot skew the count.
func DayDiff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(au.Sub(bu).Hours() / 24)
}
