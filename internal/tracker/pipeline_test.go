package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"weeklog/internal/jira"
	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

type fakeClient struct {
	mu sync.Mutex

	issues    map[string][]worklog.Issue // keyed by range start date
	searchErr error
	fetchErr  map[string]error // per issue key
	fetched   map[string]worklog.Page

	searchStarted chan string
	searchRelease chan struct{}

	worklogCalls []string
}

func (f *fakeClient) Myself(context.Context) (worklog.Author, error) {
	return worklog.Author{AccountID: "me", DisplayName: "Me"}, nil
}

func (f *fakeClient) Settings(context.Context) (jira.TrackingSettings, error) {
	return jira.TrackingSettings{WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5}, nil
}

func (f *fakeClient) SearchWorklogIssues(ctx context.Context, r week.DateRange) ([]worklog.Issue, error) {
	key := week.FormatDay(r.Start)
	if f.searchStarted != nil {
		f.searchStarted <- key
	}
	if f.searchRelease != nil {
		select {
		case <-f.searchRelease:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issues[key], nil
}

func (f *fakeClient) IssueWorklogs(_ context.Context, issueKey string, _, _ int64) (worklog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.worklogCalls = append(f.worklogCalls, issueKey)
	if err := f.fetchErr[issueKey]; err != nil {
		return worklog.Page{}, err
	}
	return f.fetched[issueKey], nil
}

func (f *fakeClient) AddWorklog(context.Context, string, time.Time, string) error { return nil }
func (f *fakeClient) EditWorklog(context.Context, string, string, time.Time, string) error {
	return nil
}
func (f *fakeClient) DeleteWorklog(context.Context, string, string) error { return nil }
func (f *fakeClient) TestIssueKey(context.Context, string) error          { return nil }
func (f *fakeClient) PickIssues(context.Context, string) ([]jira.PickedIssue, error) {
	return nil, nil
}
func (f *fakeClient) RecentIssues(context.Context) ([]jira.PickedIssue, error) { return nil, nil }

func testSession() Session {
	return Session{
		User:     worklog.Author{AccountID: "me", DisplayName: "Me"},
		Settings: jira.TrackingSettings{WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5},
	}
}

func testIssue(key string, page worklog.Page) worklog.Issue {
	return worklog.Issue{ID: "1000" + key, Key: key, Summary: "Summary of " + key, Worklog: page}
}

func testWorklog(id string, started time.Time) worklog.Worklog {
	return worklog.Worklog{
		ID:               id,
		Author:           worklog.Author{AccountID: "me"},
		Started:          started,
		TimeSpent:        "1h",
		TimeSpentSeconds: 3600,
	}
}

func TestRunOnceBucketizes(t *testing.T) {
	w := week.Window{Year: 2024, Number: 1}
	r := w.Range(time.UTC)

	client := &fakeClient{
		issues: map[string][]worklog.Issue{
			week.FormatDay(r.Start): {
				testIssue("PROJ-1", worklog.Page{Total: 2, MaxResults: 20, Worklogs: []worklog.Worklog{
					testWorklog("1", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)),
					testWorklog("2", time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC)),
				}}),
			},
		},
	}
	p := New(client, testSession(), Options{Location: time.UTC})

	result := p.RunOnce(context.Background(), w)
	if result.Err != nil {
		t.Fatalf("RunOnce() error = %v", result.Err)
	}
	if len(result.Buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(result.Buckets))
	}
	if got := result.Buckets[1].SecondsSpent(); got != 3600 {
		t.Errorf("Tuesday seconds = %d, want 3600", got)
	}
	if got := result.Buckets[3].SecondsSpent(); got != 3600 {
		t.Errorf("Thursday seconds = %d, want 3600", got)
	}
	if len(client.worklogCalls) != 0 {
		t.Errorf("secondary fetches = %v, want none for complete pages", client.worklogCalls)
	}
}

func TestRunOnceDropsFailedIssue(t *testing.T) {
	w := week.Window{Year: 2024, Number: 1}
	r := w.Range(time.UTC)

	healthy := testIssue("PROJ-1", worklog.Page{Total: 1, MaxResults: 20, Worklogs: []worklog.Worklog{
		testWorklog("1", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)),
	}})
	broken := testIssue("PROJ-2", worklog.Page{Total: 500, MaxResults: 100})

	client := &fakeClient{
		issues:   map[string][]worklog.Issue{week.FormatDay(r.Start): {healthy, broken}},
		fetchErr: map[string]error{"PROJ-2": errors.New("secondary fetch down")},
	}
	p := New(client, testSession(), Options{Location: time.UTC})

	result := p.RunOnce(context.Background(), w)
	if result.Err != nil {
		t.Fatalf("RunOnce() error = %v, want run to survive a per-issue failure", result.Err)
	}
	if len(result.DroppedIssues) != 1 || result.DroppedIssues[0] != "PROJ-2" {
		t.Errorf("DroppedIssues = %v, want [PROJ-2]", result.DroppedIssues)
	}
	var total int64
	for _, bucket := range result.Buckets {
		total += bucket.SecondsSpent()
	}
	if total != 3600 {
		t.Errorf("total seconds = %d, want 3600 from the surviving issue", total)
	}
}

func TestRunOnceSearchFailureAbortsRun(t *testing.T) {
	client := &fakeClient{searchErr: errors.New("search down")}
	p := New(client, testSession(), Options{Location: time.UTC})

	result := p.RunOnce(context.Background(), week.Window{Year: 2024, Number: 1})
	if result.Err == nil {
		t.Fatal("RunOnce() Err = nil, want search failure to abort the run")
	}
	if result.Buckets != nil {
		t.Errorf("Buckets = %v, want nil on aborted run", result.Buckets)
	}
}

func TestRunDebouncesRapidNavigation(t *testing.T) {
	client := &fakeClient{searchStarted: make(chan string, 16), issues: map[string][]worklog.Issue{}}
	p := New(client, testSession(), Options{Debounce: 30 * time.Millisecond, Location: time.UTC})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// Three navigations inside one settle window: only the last may run.
	p.Request(week.Window{Year: 2024, Number: 1})
	p.Request(week.Window{Year: 2024, Number: 2})
	p.Request(week.Window{Year: 2024, Number: 3})

	started := <-client.searchStarted
	want := week.FormatDay(week.Window{Year: 2024, Number: 3}.Range(time.UTC).Start)
	if started != want {
		t.Errorf("search started for %s, want %s", started, want)
	}

	select {
	case result := <-p.Results():
		if result.Window != (week.Window{Year: 2024, Number: 3}) {
			t.Errorf("result window = %v, want 2024-W03", result.Window)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	select {
	case started := <-client.searchStarted:
		t.Errorf("unexpected extra search for %s", started)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunDiscardsSupersededResult(t *testing.T) {
	client := &fakeClient{
		searchStarted: make(chan string, 16),
		searchRelease: make(chan struct{}),
		issues:        map[string][]worklog.Issue{},
	}
	p := New(client, testSession(), Options{Debounce: time.Millisecond, Location: time.UTC})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// First run starts and blocks inside the search.
	p.Request(week.Window{Year: 2024, Number: 1})
	<-client.searchStarted

	// A second request supersedes it while in flight.
	p.Request(week.Window{Year: 2024, Number: 2})
	<-client.searchStarted

	// Release both searches; only the newer run's result may surface.
	close(client.searchRelease)

	select {
	case result := <-p.Results():
		if result.Window != (week.Window{Year: 2024, Number: 2}) {
			t.Errorf("result window = %v, want 2024-W02", result.Window)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	select {
	case result := <-p.Results():
		t.Errorf("superseded run leaked result for %v", result.Window)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRefreshRerunsCurrentWindow(t *testing.T) {
	client := &fakeClient{searchStarted: make(chan string, 16), issues: map[string][]worklog.Issue{}}
	p := New(client, testSession(), Options{Debounce: time.Millisecond, Location: time.UTC})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	w := week.Window{Year: 2024, Number: 5}
	p.Request(w)
	<-client.searchStarted
	<-p.Results()

	p.Refresh()
	started := <-client.searchStarted
	if want := week.FormatDay(w.Range(time.UTC).Start); started != want {
		t.Errorf("refresh searched %s, want %s", started, want)
	}

	select {
	case result := <-p.Results():
		if result.Window != w {
			t.Errorf("refresh result window = %v, want %v", result.Window, w)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh result")
	}
}
