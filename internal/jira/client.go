package jira

import (
	"context"
	"time"

	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

// TrackingSettings is the instance-level time tracking configuration.
type TrackingSettings struct {
	TimeTrackingEnabled bool
	WorkingHoursPerDay  float64
	WorkingDaysPerWeek  float64
	TimeFormat          string
	DefaultUnit         string
}

// ServerInfo identifies a Jira instance during login.
type ServerInfo struct {
	BaseURL        string
	Version        string
	DeploymentType string
	ServerTitle    string
}

// PickedIssue is a lightweight search hit from the issue picker, used for
// interactive issue-key completion.
type PickedIssue struct {
	ID          int
	Key         string
	SummaryText string
}

// Client is the interface for everything the tracker asks of Jira.
type Client interface {
	// Myself returns the authenticated user.
	Myself(ctx context.Context) (worklog.Author, error)

	// Settings returns the instance time tracking configuration.
	Settings(ctx context.Context) (TrackingSettings, error)

	// SearchWorklogIssues lists the issues the current user logged time on
	// within the range, each carrying its embedded worklog page. The JQL
	// date bound is half-open: [start, day after end).
	SearchWorklogIssues(ctx context.Context, r week.DateRange) ([]worklog.Issue, error)

	// IssueWorklogs fetches the full worklog page of one issue bounded by
	// epoch millisecond timestamps.
	IssueWorklogs(ctx context.Context, issueKey string, startedAfter, startedBefore int64) (worklog.Page, error)

	// AddWorklog logs time on an issue.
	AddWorklog(ctx context.Context, issueKey string, started time.Time, timeSpent string) error

	// EditWorklog updates an existing worklog.
	EditWorklog(ctx context.Context, worklogID, issueKey string, started time.Time, timeSpent string) error

	// DeleteWorklog removes a worklog.
	DeleteWorklog(ctx context.Context, worklogID, issueKey string) error

	// TestIssueKey fails when the key does not resolve to an issue.
	TestIssueKey(ctx context.Context, issueKey string) error

	// PickIssues searches issues by free text for key completion.
	PickIssues(ctx context.Context, query string) ([]PickedIssue, error)

	// RecentIssues lists recently touched issues for key completion.
	RecentIssues(ctx context.Context) ([]PickedIssue, error)
}

// Config holds the connection settings for one Jira Cloud instance.
type Config struct {
	BaseURL string

	// EncodedKey is the base64 "email:api-token" pair for basic auth.
	EncodedKey string

	// Timeout bounds every request. Zero means a 90 second default.
	Timeout time.Duration
}

// NewClient creates a Jira Cloud REST v3 client.
func NewClient(cfg Config) Client {
	return newCloudClient(cfg)
}

// FetchServerInfo probes a Jira instance without authentication, used by the
// login flow to validate a base URL before storing credentials.
func FetchServerInfo(ctx context.Context, baseURL string) (ServerInfo, error) {
	return fetchServerInfo(ctx, baseURL)
}
