package jira

import "time"

// searchResponse is the top-level container for worklog-scoped search
// results.
type searchResponse struct {
	Total  int        `json:"total"`
	Issues []issueDTO `json:"issues"`
}

// issueDTO is a single issue in the search response.
type issueDTO struct {
	ID     string    `json:"id"`
	Key    string    `json:"key"`
	Self   string    `json:"self"`
	Fields fieldsDTO `json:"fields"`
}

// fieldsDTO carries the fields requested by the worklog search.
type fieldsDTO struct {
	Summary string `json:"summary"`
	Project struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"project"`
	IssueType struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IconURL     string `json:"iconUrl"`
		Subtask     bool   `json:"subtask"`
	} `json:"issuetype"`
	Worklog pageDTO `json:"worklog"`
}

// pageDTO is the embedded, size-capped worklog page of an issue, and also
// the shape of the standalone worklog-listing endpoint.
type pageDTO struct {
	StartAt    int          `json:"startAt"`
	MaxResults int          `json:"maxResults"`
	Total      int          `json:"total"`
	Worklogs   []worklogDTO `json:"worklogs"`
}

// worklogDTO is a single worklog record on the wire.
type worklogDTO struct {
	ID               string    `json:"id"`
	IssueID          string    `json:"issueId"`
	Author           authorDTO `json:"author"`
	Started          string    `json:"started"`
	TimeSpent        string    `json:"timeSpent"`
	TimeSpentSeconds int64     `json:"timeSpentSeconds"`
	Created          string    `json:"created"`
	Updated          string    `json:"updated"`
}

type authorDTO struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	TimeZone     string `json:"timeZone"`
	Active       bool   `json:"active"`
}

// configurationDTO is the /configuration response subset the tracker reads.
type configurationDTO struct {
	TimeTrackingEnabled       bool `json:"timeTrackingEnabled"`
	TimeTrackingConfiguration struct {
		WorkingHoursPerDay float64 `json:"workingHoursPerDay"`
		WorkingDaysPerWeek float64 `json:"workingDaysPerWeek"`
		TimeFormat         string  `json:"timeFormat"`
		DefaultUnit        string  `json:"defaultUnit"`
	} `json:"timeTrackingConfiguration"`
}

// serverInfoDTO is the unauthenticated /serverInfo response.
type serverInfoDTO struct {
	BaseURL        string `json:"baseUrl"`
	Version        string `json:"version"`
	DeploymentType string `json:"deploymentType"`
	ServerTitle    string `json:"serverTitle"`
}

// pickerResponse is the issue picker result, grouped into sections.
type pickerResponse struct {
	Sections []struct {
		Issues []pickedIssueDTO `json:"issues"`
	} `json:"sections"`
}

type pickedIssueDTO struct {
	ID          int    `json:"id"`
	Key         string `json:"key"`
	SummaryText string `json:"summaryText"`
}

// worklogBody is the add/edit mutation payload.
type worklogBody struct {
	Started   string `json:"started"`
	TimeSpent string `json:"timeSpent"`
}

// TimeFormat is the strict Jira timestamp layout used on the wire.
const TimeFormat = "2006-01-02T15:04:05.000-0700"

// ParseTime reads the strict Jira time format.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// FormatTime writes the strict Jira time format.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}
