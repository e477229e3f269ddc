// Package export writes a week of day buckets to CSV or Excel files.
package export

import (
	"fmt"
	"strings"

	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

// Report is one exported week.
type Report struct {
	Window             week.Window
	WorkingHoursPerDay float64
	Buckets            []worklog.DayBucket
}

// Writer persists a report to a file.
type Writer interface {
	Write(path string, report Report) error
}

// WriterForFormat selects a writer by format name.
func WriterForFormat(format string) (Writer, error) {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

var summaryHeaders = []string{"Date", "Weekday", "HoursSpent", "HoursRemaining", "Worklogs"}

var detailHeaders = []string{"Date", "Issue", "Summary", "Started", "TimeSpent", "Hours"}

func summaryRow(bucket worklog.DayBucket, workingHoursPerDay float64) []string {
	return []string{
		week.FormatDay(bucket.Date),
		bucket.Weekday.String(),
		fmt.Sprintf("%.2f", bucket.HoursSpent()),
		fmt.Sprintf("%.2f", float64(bucket.RemainingSeconds(workingHoursPerDay))/3600),
		fmt.Sprintf("%d", len(bucket.Worklogs)),
	}
}

func detailRows(bucket worklog.DayBucket) [][]string {
	rows := make([][]string, 0, len(bucket.Worklogs))
	for _, w := range bucket.Worklogs {
		rows = append(rows, []string{
			week.FormatDay(bucket.Date),
			w.IssueKey,
			w.Summary,
			w.Started.Format("15:04"),
			w.TimeSpent,
			fmt.Sprintf("%.2f", float64(w.TimeSpentSeconds)/3600),
		})
	}
	return rows
}

func totalHours(buckets []worklog.DayBucket) float64 {
	var total float64
	for _, bucket := range buckets {
		total += bucket.HoursSpent()
	}
	return total
}
