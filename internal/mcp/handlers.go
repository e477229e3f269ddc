package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weeklog/internal/jira"
	"weeklog/internal/timespent"
	"weeklog/internal/visuals"
	"weeklog/internal/week"
)

func stringArg(args map[string]interface{}, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return value, nil
}

func timeArg(args map[string]interface{}, key string) (time.Time, error) {
	raw, err := stringArg(args, key)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := jira.ParseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("argument %q is not a valid timestamp: %s", key, raw)
	}
	return t, nil
}

func (s *Server) handleGetWeek(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	window := week.Current()
	if raw, ok := args["week"].(string); ok && strings.TrimSpace(raw) != "" {
		parsed, err := week.Parse(raw)
		if err != nil {
			return nil, err
		}
		window = parsed
	}

	result := s.pipeline.RunOnce(ctx, window)
	if result.Err != nil {
		return nil, result.Err
	}

	days := make([]interface{}, 0, len(result.Buckets))
	var totalHours float64
	for _, bucket := range result.Buckets {
		totalHours += bucket.HoursSpent()
		logs := make([]interface{}, 0, len(bucket.Worklogs))
		for _, w := range bucket.Worklogs {
			logs = append(logs, map[string]interface{}{
				"id":        w.ID,
				"issueKey":  w.IssueKey,
				"summary":   w.Summary,
				"started":   w.Started.Format(time.RFC3339),
				"timeSpent": w.TimeSpent,
				"seconds":   w.TimeSpentSeconds,
			})
		}
		days = append(days, map[string]interface{}{
			"date":       week.FormatDay(bucket.Date),
			"weekday":    bucket.Weekday.String(),
			"hoursSpent": bucket.HoursSpent(),
			"worklogs":   logs,
		})
	}

	return map[string]interface{}{
		"week":          result.Window.String(),
		"start":         week.FormatDay(result.Range.Start),
		"end":           week.FormatDay(result.Range.End),
		"totalHours":    totalHours,
		"days":          days,
		"droppedIssues": result.DroppedIssues,
		"chart":         visuals.GenerateWeekChart(result.Window, result.Buckets, s.session.Settings.WorkingHoursPerDay),
	}, nil
}

func (s *Server) handleAddWorklog(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	issueKey, err := stringArg(args, "issue_key")
	if err != nil {
		return nil, err
	}
	started, err := timeArg(args, "started")
	if err != nil {
		return nil, err
	}
	raw, err := stringArg(args, "time_spent")
	if err != nil {
		return nil, err
	}
	timeSpent := timespent.Normalize(raw)
	if timeSpent == "" {
		return nil, fmt.Errorf("no valid duration in %q, expected tokens like 2h 30m", raw)
	}

	if err := s.jira.TestIssueKey(ctx, issueKey); err != nil {
		return nil, err
	}
	if err := s.jira.AddWorklog(ctx, issueKey, started, timeSpent); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Logged %s on %s at %s.", timeSpent, issueKey, started.Format(time.RFC3339)), nil
}

func (s *Server) handleEditWorklog(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	issueKey, err := stringArg(args, "issue_key")
	if err != nil {
		return nil, err
	}
	worklogID, err := stringArg(args, "worklog_id")
	if err != nil {
		return nil, err
	}
	started, err := timeArg(args, "started")
	if err != nil {
		return nil, err
	}
	raw, err := stringArg(args, "time_spent")
	if err != nil {
		return nil, err
	}
	timeSpent := timespent.Normalize(raw)
	if timeSpent == "" {
		return nil, fmt.Errorf("no valid duration in %q, expected tokens like 2h 30m", raw)
	}

	if err := s.jira.EditWorklog(ctx, worklogID, issueKey, started, timeSpent); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Updated worklog %s on %s to %s.", worklogID, issueKey, timeSpent), nil
}

func (s *Server) handleDeleteWorklog(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	issueKey, err := stringArg(args, "issue_key")
	if err != nil {
		return nil, err
	}
	worklogID, err := stringArg(args, "worklog_id")
	if err != nil {
		return nil, err
	}
	if err := s.jira.DeleteWorklog(ctx, worklogID, issueKey); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Deleted worklog %s from %s.", worklogID, issueKey), nil
}

func (s *Server) handleNormalizeDuration(args map[string]interface{}) (interface{}, error) {
	input, ok := args["input"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", "input")
	}
	normalized := timespent.Normalize(input)
	return map[string]interface{}{
		"input":      input,
		"normalized": normalized,
		"valid":      normalized != "",
		"seconds": timespent.Seconds(normalized,
			s.session.Settings.WorkingHoursPerDay,
			s.session.Settings.WorkingDaysPerWeek),
	}, nil
}

func (s *Server) handleFindIssues(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, _ := args["query"].(string)
	query = strings.TrimSpace(query)

	var (
		picks []jira.PickedIssue
		err   error
	)
	if query == "" {
		picks, err = s.jira.RecentIssues(ctx)
	} else {
		picks, err = s.jira.PickIssues(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	issues := make([]interface{}, 0, len(picks))
	for _, pick := range picks {
		issues = append(issues, map[string]interface{}{
			"key":     pick.Key,
			"summary": pick.SummaryText,
		})
	}
	return map[string]interface{}{"issues": issues}, nil
}
