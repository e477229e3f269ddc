package week

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Window identifies an ISO-8601 week: Monday-start, week 1 is the week
// containing January 4th. Year is the ISO week-year, which differs from the
// Gregorian year around year boundaries.
type Window struct {
	Year   int `json:"weekYear"`
	Number int `json:"weekNumber"`
}

// FromDate returns the ISO week containing t.
func FromDate(t time.Time) Window {
	year, number := t.ISOWeek()
	return Window{Year: year, Number: number}
}

// Current returns the ISO week containing "now".
func Current() Window {
	return FromDate(time.Now())
}

// Monday returns the first calendar day of the window at its first instant
// in loc.
func (w Window) Monday(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	// January 4th is always inside ISO week 1.
	jan4 := startOfDay(w.Year, time.January, 4, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday -> 7
	}
	return addDays(jan4, -(weekday-1)+(w.Number-1)*7)
}

// Range returns the Monday-through-Sunday calendar dates of the window,
// inclusive on both ends.
func (w Window) Range(loc *time.Location) DateRange {
	start := w.Monday(loc)
	return DateRange{Start: start, End: addDays(start, 6)}
}

// Next returns the following ISO week, rolling over week 52/53 into week 1
// of the next week-year.
func (w Window) Next() Window {
	return FromDate(addDays(w.Monday(time.UTC), 7))
}

// Previous returns the preceding ISO week.
func (w Window) Previous() Window {
	return FromDate(addDays(w.Monday(time.UTC), -7))
}

// String formats the window as "2025-W01".
func (w Window) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Number)
}

var windowPattern = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)

// Parse reads a "2025-W01" style label back into a Window.
func Parse(s string) (Window, error) {
	m := windowPattern.FindStringSubmatch(s)
	if m == nil {
		return Window{}, fmt.Errorf("invalid week %q: expected YYYY-Www", s)
	}
	year, _ := strconv.Atoi(m[1])
	number, _ := strconv.Atoi(m[2])
	if number < 1 || number > 53 {
		return Window{}, fmt.Errorf("invalid week number %d in %q", number, s)
	}
	// Reject week 53 in years that only have 52 ISO weeks.
	candidate := Window{Year: year, Number: number}
	if normalized := FromDate(candidate.Monday(time.UTC)); normalized != candidate {
		return Window{}, fmt.Errorf("week %q does not exist: year %d has no week %d", s, year, number)
	}
	return candidate, nil
}
