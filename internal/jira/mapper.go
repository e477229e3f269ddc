package jira

import (
	"time"

	"github.com/rs/zerolog/log"

	"weeklog/internal/worklog"
)

// mapIssue transforms a search result DTO into a domain Issue with its
// embedded worklog page.
func mapIssue(item issueDTO) worklog.Issue {
	return worklog.Issue{
		ID:      item.ID,
		Key:     item.Key,
		Self:    item.Self,
		Summary: item.Fields.Summary,
		Project: worklog.Project{
			Key:  item.Fields.Project.Key,
			Name: item.Fields.Project.Name,
		},
		Type: worklog.IssueType{
			Name:        item.Fields.IssueType.Name,
			Description: item.Fields.IssueType.Description,
			IconURL:     item.Fields.IssueType.IconURL,
			Subtask:     item.Fields.IssueType.Subtask,
		},
		Worklog: mapPage(item.Fields.Worklog),
	}
}

func mapPage(page pageDTO) worklog.Page {
	out := worklog.Page{
		StartAt:    page.StartAt,
		MaxResults: page.MaxResults,
		Total:      page.Total,
		Worklogs:   make([]worklog.Worklog, 0, len(page.Worklogs)),
	}
	for _, w := range page.Worklogs {
		out.Worklogs = append(out.Worklogs, mapWorklog(w))
	}
	return out
}

func mapWorklog(w worklogDTO) worklog.Worklog {
	mapped := worklog.Worklog{
		ID:               w.ID,
		IssueID:          w.IssueID,
		Author:           mapAuthor(w.Author),
		TimeSpent:        w.TimeSpent,
		TimeSpentSeconds: w.TimeSpentSeconds,
	}
	mapped.Started = parseWorklogTime(w.ID, "started", w.Started)
	mapped.Created = parseWorklogTime(w.ID, "created", w.Created)
	mapped.Updated = parseWorklogTime(w.ID, "updated", w.Updated)
	return mapped
}

// parseWorklogTime parses a wire timestamp, returning the zero time when it
// does not conform. A zeroed started falls outside every window, so the
// worklog would vanish from the week without the warning.
func parseWorklogTime(worklogID, field, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := ParseTime(value)
	if err != nil {
		log.Warn().
			Str("worklog", worklogID).
			Str("field", field).
			Str("value", value).
			Msg("Unparsable worklog timestamp")
		return time.Time{}
	}
	return t
}

func mapAuthor(a authorDTO) worklog.Author {
	return worklog.Author{
		AccountID:    a.AccountID,
		DisplayName:  a.DisplayName,
		EmailAddress: a.EmailAddress,
		TimeZone:     a.TimeZone,
		Active:       a.Active,
	}
}

func mapSettings(cfg configurationDTO) TrackingSettings {
	settings := TrackingSettings{
		TimeTrackingEnabled: cfg.TimeTrackingEnabled,
		WorkingHoursPerDay:  cfg.TimeTrackingConfiguration.WorkingHoursPerDay,
		WorkingDaysPerWeek:  cfg.TimeTrackingConfiguration.WorkingDaysPerWeek,
		TimeFormat:          cfg.TimeTrackingConfiguration.TimeFormat,
		DefaultUnit:         cfg.TimeTrackingConfiguration.DefaultUnit,
	}
	if settings.WorkingHoursPerDay <= 0 {
		settings.WorkingHoursPerDay = 8
	}
	if settings.WorkingDaysPerWeek <= 0 {
		settings.WorkingDaysPerWeek = 5
	}
	return settings
}

// mapPickedIssues flattens picker sections and deduplicates hits by ID,
// keeping the first occurrence.
func mapPickedIssues(resp pickerResponse) []PickedIssue {
	seen := make(map[int]struct{})
	var out []PickedIssue
	for _, section := range resp.Sections {
		for _, issue := range section.Issues {
			if _, dup := seen[issue.ID]; dup {
				continue
			}
			seen[issue.ID] = struct{}{}
			out = append(out, PickedIssue{
				ID:          issue.ID,
				Key:         issue.Key,
				SummaryText: issue.SummaryText,
			})
		}
	}
	return out
}
