package week

import "time"

// DateRange is a pair of inclusive calendar dates, stored as midnights in the
// location the range was derived in. Callers holding a Window derive ranges
// from it rather than constructing them directly, so a week identifier and
// its boundaries cannot drift apart.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the range covers no calendar days.
func (r DateRange) IsEmpty() bool {
	return r.End.Before(r.Start)
}

// DayCount returns the inclusive number of calendar days, zero for an empty
// range. The count runs over date components, not elapsed time, so a DST
// transition inside the range cannot shift it.
func (r DateRange) DayCount() int {
	if r.IsEmpty() {
		return 0
	}
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// Days enumerates every calendar date in the range, start through end.
func (r DateRange) Days() []time.Time {
	count := r.DayCount()
	if count == 0 {
		return nil
	}
	days := make([]time.Time, count)
	for i := range days {
		days[i] = addDays(r.Start, i)
	}
	return days
}

// StartMillis is the epoch-millisecond timestamp of the first instant of the
// range, used as the startedAfter bound for worklog fetches.
func (r DateRange) StartMillis() int64 {
	return r.Start.UnixMilli()
}

// EndMillis is the epoch-millisecond timestamp of the last instant of the
// final day (start of the following day minus one millisecond), used as the
// startedBefore bound.
func (r DateRange) EndMillis() int64 {
	return addDays(r.End, 1).UnixMilli() - 1
}

// Contains reports whether t falls on one of the range's calendar days,
// inclusive on both ends. Comparison is by instant against the day
// boundaries, not by string, so timestamps with a time-of-day component are
// handled unambiguously.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsEmpty() {
		return false
	}
	ms := t.UnixMilli()
	return ms >= r.StartMillis() && ms <= r.EndMillis()
}

// ExclusiveEnd returns the day after the range's last day. The issue search
// JQL uses a half-open interval while the reconciler filter stays inclusive.
func (r DateRange) ExclusiveEnd() time.Time {
	return addDays(r.End, 1)
}

// startOfDay returns the first instant of the calendar date in loc. In zones
// whose DST gap opens at midnight the date has no 00:00 and time.Date
// normalizes away from it; step forward until the instant lands on the
// requested date.
func startOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	for t.Day() != day {
		t = t.Add(30 * time.Minute)
	}
	return t
}

// addDays returns the start of the date n calendar days from t's date, in
// t's location. The step runs on date components so DST transitions cannot
// stretch or shrink it.
func addDays(t time.Time, n int) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return startOfDay(d.Year(), d.Month(), d.Day(), t.Location())
}

// FormatDay renders a date as the wire-level date-only form.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
