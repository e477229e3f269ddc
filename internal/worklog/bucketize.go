package worklog

import (
	"sort"

	"weeklog/internal/week"
)

// Flatten expands reconciled issues into enriched worklogs, sorted by
// started time ascending. The worklog's own fields win over the parent
// issue's on any overlap. Sorting here makes presentation order
// deterministic regardless of the order reconciliations completed in.
func Flatten(issues []Reconciled) []Enriched {
	var out []Enriched
	for _, ri := range issues {
		for _, w := range ri.Worklogs {
			out = append(out, Enriched{
				Worklog:   w,
				IssueKey:  ri.Issue.Key,
				IssueSelf: ri.Issue.Self,
				Summary:   ri.Issue.Summary,
				Project:   ri.Issue.Project,
				Type:      ri.Issue.Type,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Started.UnixMilli() < out[j].Started.UnixMilli()
	})
	return out
}

// Bucketize projects reconciled worklogs onto every calendar day of the
// range, one bucket per date in order, empty buckets included. An empty
// range yields no buckets.
func Bucketize(issues []Reconciled, r week.DateRange) []DayBucket {
	flattened := Flatten(issues)

	byDay := make(map[string][]Enriched)
	for _, w := range flattened {
		key := week.FormatDay(w.Started.In(r.Start.Location()))
		byDay[key] = append(byDay[key], w)
	}

	days := r.Days()
	buckets := make([]DayBucket, 0, len(days))
	for _, day := range days {
		buckets = append(buckets, DayBucket{
			Date:     day,
			Weekday:  day.Weekday(),
			Worklogs: byDay[week.FormatDay(day)],
		})
	}
	return buckets
}
