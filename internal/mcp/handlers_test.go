package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"weeklog/internal/jira"
	"weeklog/internal/tracker"
	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

type fakeClient struct {
	issues []worklog.Issue
	picks  []jira.PickedIssue
	recent []jira.PickedIssue

	added   []string
	deleted []string
	badKeys map[string]bool
}

func (f *fakeClient) Myself(context.Context) (worklog.Author, error) {
	return worklog.Author{AccountID: "me", DisplayName: "Me"}, nil
}

func (f *fakeClient) Settings(context.Context) (jira.TrackingSettings, error) {
	return jira.TrackingSettings{WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5}, nil
}

func (f *fakeClient) SearchWorklogIssues(context.Context, week.DateRange) ([]worklog.Issue, error) {
	return f.issues, nil
}

func (f *fakeClient) IssueWorklogs(context.Context, string, int64, int64) (worklog.Page, error) {
	return worklog.Page{}, nil
}

func (f *fakeClient) AddWorklog(_ context.Context, issueKey string, _ time.Time, timeSpent string) error {
	f.added = append(f.added, issueKey+" "+timeSpent)
	return nil
}

func (f *fakeClient) EditWorklog(context.Context, string, string, time.Time, string) error {
	return nil
}

func (f *fakeClient) DeleteWorklog(_ context.Context, worklogID, issueKey string) error {
	f.deleted = append(f.deleted, issueKey+"/"+worklogID)
	return nil
}

func (f *fakeClient) TestIssueKey(_ context.Context, issueKey string) error {
	if f.badKeys[issueKey] {
		return &jira.StatusError{Code: 404, Operation: "get issue"}
	}
	return nil
}

func (f *fakeClient) PickIssues(context.Context, string) ([]jira.PickedIssue, error) {
	return f.picks, nil
}

func (f *fakeClient) RecentIssues(context.Context) ([]jira.PickedIssue, error) {
	return f.recent, nil
}

func testServer(client *fakeClient) *Server {
	session := tracker.Session{
		User:     worklog.Author{AccountID: "me", DisplayName: "Me"},
		Settings: jira.TrackingSettings{WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5},
	}
	server := NewServer(client, session)
	server.out = &bytes.Buffer{}
	return server
}

func callArgs(raw string) map[string]interface{} {
	var args map[string]interface{}
	_ = json.Unmarshal([]byte(raw), &args)
	return args
}

func TestHandleNormalizeDuration(t *testing.T) {
	server := testServer(&fakeClient{})

	tests := []struct {
		name       string
		input      string
		normalized string
		valid      bool
		seconds    float64
	}{
		{name: "clean", input: "2h 30m", normalized: "2h 30m", valid: true, seconds: 9000},
		{name: "noisy", input: "2h 30m!!", normalized: "2h 30m", valid: true, seconds: 9000},
		{name: "day unit", input: "1d", normalized: "1d", valid: true, seconds: 8 * 3600},
		{name: "no tokens", input: "no numbers here", normalized: "", valid: false, seconds: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := server.handleNormalizeDuration(map[string]interface{}{"input": tt.input})
			if err != nil {
				t.Fatalf("handleNormalizeDuration returned error: %v", err)
			}
			result := data.(map[string]interface{})
			if result["normalized"] != tt.normalized {
				t.Errorf("normalized = %v, want %q", result["normalized"], tt.normalized)
			}
			if result["valid"] != tt.valid {
				t.Errorf("valid = %v, want %v", result["valid"], tt.valid)
			}
			if got := result["seconds"].(int64); float64(got) != tt.seconds {
				t.Errorf("seconds = %d, want %v", got, tt.seconds)
			}
		})
	}
}

func TestHandleAddWorklogNormalizesDuration(t *testing.T) {
	client := &fakeClient{}
	server := testServer(client)

	data, err := server.handleAddWorklog(context.Background(), callArgs(
		`{"issue_key": "PROJ-1", "started": "2024-01-03T09:30:00Z", "time_spent": "2h 30m!!"}`))
	if err != nil {
		t.Fatalf("handleAddWorklog returned error: %v", err)
	}
	if len(client.added) != 1 || client.added[0] != "PROJ-1 2h 30m" {
		t.Errorf("added = %v, want one call with normalized duration", client.added)
	}
	if text := data.(string); !strings.Contains(text, "2h 30m") {
		t.Errorf("confirmation %q should carry the normalized duration", text)
	}
}

func TestHandleAddWorklogRejectsInvalidDuration(t *testing.T) {
	client := &fakeClient{}
	server := testServer(client)

	_, err := server.handleAddWorklog(context.Background(), callArgs(
		`{"issue_key": "PROJ-1", "started": "2024-01-03T09:30:00Z", "time_spent": "soon"}`))
	if err == nil {
		t.Fatal("expected error for duration with no tokens")
	}
	if len(client.added) != 0 {
		t.Errorf("no worklog should be submitted, got %v", client.added)
	}
}

func TestHandleAddWorklogRejectsUnknownIssue(t *testing.T) {
	client := &fakeClient{badKeys: map[string]bool{"NOPE-1": true}}
	server := testServer(client)

	_, err := server.handleAddWorklog(context.Background(), callArgs(
		`{"issue_key": "NOPE-1", "started": "2024-01-03T09:30:00Z", "time_spent": "1h"}`))
	if err == nil {
		t.Fatal("expected error for unresolvable issue key")
	}
	if !jira.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestHandleDeleteWorklog(t *testing.T) {
	client := &fakeClient{}
	server := testServer(client)

	if _, err := server.handleDeleteWorklog(context.Background(), callArgs(
		`{"issue_key": "PROJ-1", "worklog_id": "100"}`)); err != nil {
		t.Fatalf("handleDeleteWorklog returned error: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "PROJ-1/100" {
		t.Errorf("deleted = %v", client.deleted)
	}
}

func TestHandleGetWeekBuildsBuckets(t *testing.T) {
	started := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	client := &fakeClient{
		issues: []worklog.Issue{
			{
				ID:      "1",
				Key:     "PROJ-1",
				Summary: "Fix login",
				Worklog: worklog.Page{
					StartAt:    0,
					MaxResults: 20,
					Total:      1,
					Worklogs: []worklog.Worklog{
						{
							ID:               "100",
							Author:           worklog.Author{AccountID: "me"},
							Started:          started,
							TimeSpent:        "2h",
							TimeSpentSeconds: 7200,
						},
					},
				},
			},
		},
	}
	server := testServer(client)

	data, err := server.handleGetWeek(context.Background(), callArgs(`{"week": "2024-W01"}`))
	if err != nil {
		t.Fatalf("handleGetWeek returned error: %v", err)
	}
	result := data.(map[string]interface{})
	if result["week"] != "2024-W01" {
		t.Errorf("week = %v", result["week"])
	}
	days := result["days"].([]interface{})
	if len(days) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(days))
	}
	wednesday := days[2].(map[string]interface{})
	if got := len(wednesday["worklogs"].([]interface{})); got != 1 {
		t.Errorf("expected the worklog bucketed on Wednesday, got %d entries", got)
	}
	if result["totalHours"].(float64) != 2 {
		t.Errorf("totalHours = %v, want 2", result["totalHours"])
	}
}

func TestHandleFindIssuesFallsBackToRecent(t *testing.T) {
	client := &fakeClient{
		picks:  []jira.PickedIssue{{Key: "PROJ-7", SummaryText: "Search hit"}},
		recent: []jira.PickedIssue{{Key: "PROJ-9", SummaryText: "Recent"}},
	}
	server := testServer(client)

	data, err := server.handleFindIssues(context.Background(), callArgs(`{"query": ""}`))
	if err != nil {
		t.Fatalf("handleFindIssues returned error: %v", err)
	}
	issues := data.(map[string]interface{})["issues"].([]interface{})
	if len(issues) != 1 || issues[0].(map[string]interface{})["key"] != "PROJ-9" {
		t.Errorf("empty query should list recent issues, got %v", issues)
	}

	data, err = server.handleFindIssues(context.Background(), callArgs(`{"query": "login"}`))
	if err != nil {
		t.Fatalf("handleFindIssues returned error: %v", err)
	}
	issues = data.(map[string]interface{})["issues"].([]interface{})
	if len(issues) != 1 || issues[0].(map[string]interface{})["key"] != "PROJ-7" {
		t.Errorf("non-empty query should search the picker, got %v", issues)
	}
}

func TestCallToolUnknownTool(t *testing.T) {
	server := testServer(&fakeClient{})

	params, _ := json.Marshal(map[string]interface{}{"name": "does_not_exist"})
	result, errRes := server.callTool(context.Background(), params)
	if result != nil {
		t.Errorf("result should be nil for unknown tool, got %v", result)
	}
	if errRes == nil {
		t.Fatal("expected a JSON-RPC error for an unknown tool")
	}
	if code := errRes.(map[string]interface{})["code"]; code != -32601 {
		t.Errorf("code = %v, want -32601", code)
	}
}
