// Package worklog holds the tracker's domain model and the reconciliation
// and day-bucketing engine that turns raw issue search results into a
// per-user, per-day view of logged time.
package worklog

import "time"

// Author identifies the user who logged time. AccountID is the stable key;
// the rest is display metadata.
type Author struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	TimeZone     string `json:"timeZone,omitempty"`
	Active       bool   `json:"active,omitempty"`
}

// Project is the owning project of an issue.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// IssueType describes the kind of issue a worklog was logged against.
type IssueType struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	Subtask     bool   `json:"subtask,omitempty"`
}

// Worklog is one time-logged record on an issue.
type Worklog struct {
	ID               string    `json:"id"`
	IssueID          string    `json:"issueId"`
	Author           Author    `json:"author"`
	Comment          string    `json:"comment,omitempty"`
	Started          time.Time `json:"started"`
	TimeSpent        string    `json:"timeSpent"`
	TimeSpentSeconds int64     `json:"timeSpentSeconds"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

// Page is the size-capped worklog page embedded in an issue search result.
// When Total exceeds MaxResults the page is incomplete and the true worklog
// set must be fetched separately.
type Page struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Worklogs   []Worklog `json:"worklogs"`
}

// Truncated reports whether the embedded page is missing entries.
func (p Page) Truncated() bool {
	return p.Total > p.MaxResults
}

// Issue is a candidate issue returned by the worklog-scoped search, carrying
// its embedded worklog page. Issues live for a single aggregation run and
// are never persisted.
type Issue struct {
	ID      string    `json:"id"`
	Key     string    `json:"key"`
	Self    string    `json:"self"`
	Summary string    `json:"summary"`
	Project Project   `json:"project"`
	Type    IssueType `json:"issuetype"`
	Worklog Page      `json:"worklog"`
}

// Enriched is a worklog joined with its parent issue's identifying fields,
// produced by the bucketizer for presentation and editing.
type Enriched struct {
	Worklog
	IssueKey  string    `json:"key"`
	IssueSelf string    `json:"self"`
	Summary   string    `json:"summary"`
	Project   Project   `json:"project"`
	Type      IssueType `json:"issuetype"`
}

// DayBucket is the aggregated view of one calendar date. A bucket exists for
// every date of the requested range, empty or not.
type DayBucket struct {
	Date     time.Time    `json:"date"`
	Weekday  time.Weekday `json:"weekday"`
	Worklogs []Enriched   `json:"worklogs"`
}

// SecondsSpent sums the time logged in the bucket.
func (b DayBucket) SecondsSpent() int64 {
	var total int64
	for _, w := range b.Worklogs {
		total += w.TimeSpentSeconds
	}
	return total
}

// HoursSpent returns the bucket total in hours.
func (b DayBucket) HoursSpent() float64 {
	return float64(b.SecondsSpent()) / 3600
}

// RemainingSeconds returns the unfilled capacity of the day given a working
// schedule. Negative when the day is overbooked. Used to seed the default
// duration of a new worklog on that day.
func (b DayBucket) RemainingSeconds(workingHoursPerDay float64) int64 {
	return int64(workingHoursPerDay*3600) - b.SecondsSpent()
}
