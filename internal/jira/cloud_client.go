package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

type cloudClient struct {
	cfg        Config
	httpClient *http.Client
}

func newCloudClient(cfg Config) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &cloudClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *cloudClient) do(ctx context.Context, op, method, path string, params url.Values, body, out any) error {
	requestURL := fmt.Sprintf("%s/rest/api/3/%s", c.cfg.BaseURL, path)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Basic "+c.cfg.EncodedKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("op", op).Str("method", method).Str("url", requestURL).Msg("Jira request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().Str("op", op).Int("status", resp.StatusCode).Msg("Jira request failed")
		return &StatusError{Code: resp.StatusCode, Operation: op}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *cloudClient) Myself(ctx context.Context) (worklog.Author, error) {
	var dto authorDTO
	if err := c.do(ctx, "myself", http.MethodGet, "myself", nil, nil, &dto); err != nil {
		return worklog.Author{}, err
	}
	return mapAuthor(dto), nil
}

func (c *cloudClient) Settings(ctx context.Context) (TrackingSettings, error) {
	var dto configurationDTO
	if err := c.do(ctx, "configuration", http.MethodGet, "configuration", nil, nil, &dto); err != nil {
		return TrackingSettings{}, err
	}
	return mapSettings(dto), nil
}

func (c *cloudClient) SearchWorklogIssues(ctx context.Context, r week.DateRange) ([]worklog.Issue, error) {
	jql := fmt.Sprintf(
		"worklogAuthor in (currentUser()) and worklogDate >= '%s' and worklogDate < '%s'",
		week.FormatDay(r.Start),
		week.FormatDay(r.ExclusiveEnd()),
	)

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", "worklog,summary,project,issuetype")
	params.Set("maxResults", "1000")

	log.Info().Str("start", week.FormatDay(r.Start)).Str("end", week.FormatDay(r.End)).Msg("Searching worklog issues")

	var resp searchResponse
	if err := c.do(ctx, "search", http.MethodGet, "search", params, nil, &resp); err != nil {
		return nil, err
	}

	issues := make([]worklog.Issue, 0, len(resp.Issues))
	for _, item := range resp.Issues {
		issues = append(issues, mapIssue(item))
	}
	return issues, nil
}

func (c *cloudClient) IssueWorklogs(ctx context.Context, issueKey string, startedAfter, startedBefore int64) (worklog.Page, error) {
	params := url.Values{}
	params.Set("startedAfter", fmt.Sprintf("%d", startedAfter))
	params.Set("startedBefore", fmt.Sprintf("%d", startedBefore))

	var dto pageDTO
	path := fmt.Sprintf("issue/%s/worklog", url.PathEscape(issueKey))
	if err := c.do(ctx, "issue worklogs", http.MethodGet, path, params, nil, &dto); err != nil {
		return worklog.Page{}, err
	}
	return mapPage(dto), nil
}

func (c *cloudClient) AddWorklog(ctx context.Context, issueKey string, started time.Time, timeSpent string) error {
	path := fmt.Sprintf("issue/%s/worklog", url.PathEscape(issueKey))
	body := worklogBody{Started: FormatTime(started), TimeSpent: timeSpent}
	return c.do(ctx, "add worklog", http.MethodPost, path, nil, body, nil)
}

func (c *cloudClient) EditWorklog(ctx context.Context, worklogID, issueKey string, started time.Time, timeSpent string) error {
	path := fmt.Sprintf("issue/%s/worklog/%s", url.PathEscape(issueKey), url.PathEscape(worklogID))
	body := worklogBody{Started: FormatTime(started), TimeSpent: timeSpent}
	return c.do(ctx, "edit worklog", http.MethodPut, path, nil, body, nil)
}

func (c *cloudClient) DeleteWorklog(ctx context.Context, worklogID, issueKey string) error {
	path := fmt.Sprintf("issue/%s/worklog/%s", url.PathEscape(issueKey), url.PathEscape(worklogID))
	return c.do(ctx, "delete worklog", http.MethodDelete, path, nil, nil, nil)
}

func (c *cloudClient) TestIssueKey(ctx context.Context, issueKey string) error {
	params := url.Values{}
	params.Set("fields", "summary")
	path := fmt.Sprintf("issue/%s", url.PathEscape(issueKey))
	return c.do(ctx, "test issue key", http.MethodGet, path, params, nil, nil)
}

func (c *cloudClient) PickIssues(ctx context.Context, query string) ([]PickedIssue, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("showSubTasks", "true")
	params.Set("showSubTaskParent", "true")
	params.Set("currentJQL", `project in projectsWhereUserHasPermission("Work on issues") order by key`)

	var resp pickerResponse
	if err := c.do(ctx, "issue picker", http.MethodGet, "issue/picker", params, nil, &resp); err != nil {
		return nil, err
	}
	return mapPickedIssues(resp), nil
}

func (c *cloudClient) RecentIssues(ctx context.Context) ([]PickedIssue, error) {
	params := url.Values{}
	params.Set("showSubTasks", "true")
	params.Set("showSubTaskParent", "true")

	var resp pickerResponse
	if err := c.do(ctx, "recent issues", http.MethodGet, "issue/picker", params, nil, &resp); err != nil {
		return nil, err
	}
	return mapPickedIssues(resp), nil
}

func fetchServerInfo(ctx context.Context, baseURL string) (ServerInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/rest/api/3/serverInfo", nil)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("server info: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := (&http.Client{Timeout: 30 * time.Second}).Do(req)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("server info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ServerInfo{}, &StatusError{Code: resp.StatusCode, Operation: "server info"}
	}

	var dto serverInfoDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return ServerInfo{}, fmt.Errorf("server info: decode response: %w", err)
	}
	return ServerInfo{
		BaseURL:        dto.BaseURL,
		Version:        dto.Version,
		DeploymentType: dto.DeploymentType,
		ServerTitle:    dto.ServerTitle,
	}, nil
}
