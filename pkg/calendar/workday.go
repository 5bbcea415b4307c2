// Package calendar counts working days between two calendar dates.
//
// Policy: a working day is any Monday–Friday that is not in the supplied
// HolidaySet. The zero HolidaySet excludes weekends only; no year-specific
// holiday list is built in, callers inject one (see LoadYAML and LoadICS).
package calendar

import "time"

// DateLayout ISO calendar date layout used throughout the API
const DateLayout = "2006-01-02"

// HolidaySet a set of calendar days excluded from working-day counts.
// Keys are normalized to UTC midnight.
type HolidaySet map[time.Time]string

// NewHolidaySet builds an empty set
func NewHolidaySet() HolidaySet {
	return make(HolidaySet)
}

// Add registers day as a holiday. Name may be empty.
func (h HolidaySet) Add(day time.Time, name string) {
	h[Day(day)] = name
}

// Contains reports whether day is a holiday. A nil set contains nothing.
func (h HolidaySet) Contains(day time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[Day(day)]
	return ok
}

// Merge copies every entry of other into h
func (h HolidaySet) Merge(other HolidaySet) {
	for d, name := range other {
		h[d] = name
	}
}

// Day truncates t to its calendar day at UTC midnight, keeping the
// year/month/day as seen in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO "2006-01-02" date into a UTC calendar day
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsWorkingDay reports whether day is Monday–Friday and not a holiday
func IsWorkingDay(day time.Time, holidays HolidaySet) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(day)
}

// WorkingDays counts working days in the inclusive range [start, end].
// It returns 0 when start is after end.
func WorkingDays(start, end time.Time, holidays HolidaySet) int {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			count++
		}
	}
	return count
}

// SpanDays returns |end - start| in whole calendar days
func SpanDays(start, end time.Time) int {
	diff := Day(end).Sub(Day(start))
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

// Contains reports whether day falls within [start, end], both inclusive
func Contains(start, end, day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(start)) && !d.After(Day(end))
}
