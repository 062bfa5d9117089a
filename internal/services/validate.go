package services

import (
	"time"
)

// Limits from the entity schema.
const (
	maxNameLen        = 100
	maxLocationLen    = 200
	maxDescriptionLen = 500
	maxCapacity       = 100000
)

// today returns midnight UTC of the current day. Entity dates are normalized
// to UTC midnight at the parse boundary, so "before today" is a calendar-day
// comparison.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func beforeToday(t time.Time) bool {
	return t.Before(today())
}
