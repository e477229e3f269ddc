package visuals

import (
	"fmt"
	"math"
	"strings"

	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

// GenerateWeekChart creates a Mermaid xychart-beta bar chart of hours logged
// per day across the window.
func GenerateWeekChart(window week.Window, buckets []worklog.DayBucket, workingHoursPerDay float64) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string

	maxVal := workingHoursPerDay
	for _, bucket := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", bucket.Weekday.String()[:3]))
		values = append(values, fmt.Sprintf("%.1f", bucket.HoursSpent()))
		if bucket.HoursSpent() > maxVal {
			maxVal = bucket.HoursSpent()
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Hours Logged (%s)\"\n", window))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Hours\" 0 --> %d\n", int(math.Ceil(maxVal*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// RenderWeekTable renders the window as a plain-text table, one row per day
// with an indented line per worklog.
func RenderWeekTable(window week.Window, buckets []worklog.DayBucket, workingHoursPerDay float64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Week %s\n", window))

	var total float64
	for _, bucket := range buckets {
		total += bucket.HoursSpent()
		sb.WriteString(fmt.Sprintf("%s %-9s %6.2fh", week.FormatDay(bucket.Date), bucket.Weekday, bucket.HoursSpent()))
		if remaining := bucket.RemainingSeconds(workingHoursPerDay); remaining > 0 && len(bucket.Worklogs) > 0 {
			sb.WriteString(fmt.Sprintf("  (%.2fh remaining)", float64(remaining)/3600))
		}
		sb.WriteString("\n")
		for _, w := range bucket.Worklogs {
			summary := w.Summary
			if runes := []rune(summary); len(runes) > 60 {
				summary = string(runes[:57]) + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s  %-12s %-8s %s\n", w.Started.Format("15:04"), w.IssueKey, w.TimeSpent, summary))
		}
	}
	sb.WriteString(fmt.Sprintf("Total %.2fh\n", total))
	return sb.String()
}
