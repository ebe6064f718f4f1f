package coshh

import "time"

// civilDate truncates t to midnight UTC of its calendar day.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReviewDate returns the date one calendar year after assessed. An assessment
// made on 29 February is due for review on 28 February of the next year;
// time.AddDate would roll it over to 1 March instead.
func ReviewDate(assessed time.Time) time.Time {
	y, m, d := assessed.Date()
	if m == time.February && d == 29 {
		d = 28
	}
	return time.Date(y+1, m, d, 0, 0, 0, 0, time.UTC)
}

// DueWithin reports whether review falls on or before now plus window.
func DueWithin(review, now time.Time, window time.Duration) bool {
	return !civilDate(review).After(civilDate(now.Add(window)))
}

// Overdue reports whether review fell on a day before now.
func Overdue(review, now time.Time) bool {
	return civilDate(review).Before(civilDate(now))
}
