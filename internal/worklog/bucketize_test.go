package worklog

import (
	"testing"
	"time"

	"weeklog/internal/week"
)

func enrichedInput(t *testing.T) ([]Reconciled, week.DateRange) {
	t.Helper()
	r := week.Window{Year: 2024, Number: 1}.Range(time.UTC)

	issue := Issue{
		ID:      "10001",
		Key:     "PROJ-1",
		Summary: "Fix the flux capacitor",
		Project: Project{Key: "PROJ", Name: "Project"},
		Type:    IssueType{Name: "Task"},
	}
	other := Issue{
		ID:      "10002",
		Key:     "PROJ-2",
		Summary: "Grease the wheel",
		Project: Project{Key: "PROJ", Name: "Project"},
		Type:    IssueType{Name: "Bug"},
	}

	return []Reconciled{
		{Issue: issue, Worklogs: []Worklog{
			wl("1", "me", time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)),
			wl("2", "me", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
		}},
		{Issue: other, Worklogs: []Worklog{
			wl("3", "me", time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)),
		}},
	}, r
}

func TestBucketizeCoverage(t *testing.T) {
	issues, r := enrichedInput(t)

	buckets := Bucketize(issues, r)
	if len(buckets) != 7 {
		t.Fatalf("Bucketize() returned %d buckets, want 7", len(buckets))
	}
	for i, bucket := range buckets {
		want := r.Start.AddDate(0, 0, i)
		if !bucket.Date.Equal(want) {
			t.Errorf("bucket[%d].Date = %v, want %v", i, bucket.Date, want)
		}
		if bucket.Weekday != want.Weekday() {
			t.Errorf("bucket[%d].Weekday = %v, want %v", i, bucket.Weekday, want.Weekday())
		}
	}
}

func TestBucketizeGroupsAndSorts(t *testing.T) {
	issues, r := enrichedInput(t)

	buckets := Bucketize(issues, r)

	// Monday has one entry, Wednesday two in ascending started order.
	monday := buckets[0]
	if len(monday.Worklogs) != 1 || monday.Worklogs[0].ID != "2" {
		t.Errorf("Monday bucket = %v, want single worklog 2", monday.Worklogs)
	}

	wednesday := buckets[2]
	if len(wednesday.Worklogs) != 2 {
		t.Fatalf("Wednesday bucket has %d worklogs, want 2", len(wednesday.Worklogs))
	}
	if wednesday.Worklogs[0].ID != "3" || wednesday.Worklogs[1].ID != "1" {
		t.Errorf("Wednesday order = [%s %s], want [3 1]",
			wednesday.Worklogs[0].ID, wednesday.Worklogs[1].ID)
	}

	for _, i := range []int{1, 3, 4, 5, 6} {
		if len(buckets[i].Worklogs) != 0 {
			t.Errorf("bucket[%d] has %d worklogs, want empty", i, len(buckets[i].Worklogs))
		}
	}
}

func TestBucketizeEnrichment(t *testing.T) {
	issues, r := enrichedInput(t)

	buckets := Bucketize(issues, r)
	got := buckets[2].Worklogs[1] // worklog 1 on PROJ-1

	if got.IssueKey != "PROJ-1" {
		t.Errorf("IssueKey = %q, want PROJ-1", got.IssueKey)
	}
	if got.Summary != "Fix the flux capacitor" {
		t.Errorf("Summary = %q, want issue summary", got.Summary)
	}
	if got.Type.Name != "Task" {
		t.Errorf("Type.Name = %q, want Task", got.Type.Name)
	}
	// The worklog's own fields stay authoritative after the join.
	if got.ID != "1" || got.TimeSpentSeconds != 3600 {
		t.Errorf("worklog fields lost in enrichment: %+v", got.Worklog)
	}
}

func TestBucketizeTotals(t *testing.T) {
	issues, r := enrichedInput(t)

	buckets := Bucketize(issues, r)
	wednesday := buckets[2]

	if got := wednesday.SecondsSpent(); got != 7200 {
		t.Errorf("SecondsSpent() = %d, want 7200", got)
	}
	if got := wednesday.HoursSpent(); got != 2 {
		t.Errorf("HoursSpent() = %v, want 2", got)
	}
	if got := wednesday.RemainingSeconds(8); got != 6*3600 {
		t.Errorf("RemainingSeconds(8) = %d, want %d", got, 6*3600)
	}
	if got := buckets[1].RemainingSeconds(8); got != 8*3600 {
		t.Errorf("empty day RemainingSeconds(8) = %d, want %d", got, 8*3600)
	}
}

func TestBucketizeEmptyRange(t *testing.T) {
	issues, _ := enrichedInput(t)
	empty := week.DateRange{
		Start: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if buckets := Bucketize(issues, empty); len(buckets) != 0 {
		t.Errorf("Bucketize() on empty range returned %d buckets, want 0", len(buckets))
	}
}

func TestFlattenSortsAcrossIssues(t *testing.T) {
	issues, _ := enrichedInput(t)

	flat := Flatten(issues)
	if len(flat) != 3 {
		t.Fatalf("Flatten() returned %d worklogs, want 3", len(flat))
	}
	for i := 1; i < len(flat); i++ {
		if flat[i].Started.Before(flat[i-1].Started) {
			t.Errorf("Flatten() not sorted at %d: %v before %v", i, flat[i].Started, flat[i-1].Started)
		}
	}
}

func TestBucketizeMidnightDSTSunday(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("zone unavailable: %v", err)
	}

	// Clocks jump from 2024-09-07 24:00 to 2024-09-08 01:00, so the week's
	// Sunday has no midnight instant.
	r := week.Window{Year: 2024, Number: 36}.Range(loc)
	issue := Issue{ID: "10001", Key: "PROJ-1", Summary: "Sunday shift"}
	issues := []Reconciled{
		{Issue: issue, Worklogs: []Worklog{
			wl("1", "me", time.Date(2024, 9, 8, 9, 0, 0, 0, loc)),
		}},
	}

	buckets := Bucketize(issues, r)
	if len(buckets) != 7 {
		t.Fatalf("Bucketize() returned %d buckets, want 7", len(buckets))
	}
	sunday := buckets[6]
	if got := week.FormatDay(sunday.Date); got != "2024-09-08" {
		t.Errorf("bucket[6].Date = %s, want 2024-09-08", got)
	}
	if len(sunday.Worklogs) != 1 {
		t.Errorf("bucket[6] carries %d worklogs, want 1", len(sunday.Worklogs))
	}
}
