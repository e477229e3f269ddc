package worklog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"weeklog/internal/week"
)

// Fetcher retrieves the full worklog page of one issue, bounded by epoch
// millisecond timestamps. It is the only network dependency of the
// reconciler and is called at most once per issue.
type Fetcher interface {
	IssueWorklogs(ctx context.Context, issueKey string, startedAfter, startedBefore int64) (Page, error)
}

// Reconciled pairs an issue with its authoritative worklog set for one user
// and date range.
type Reconciled struct {
	Issue    Issue
	Worklogs []Worklog
}

// Reconcile produces the authoritative worklog set for a single issue.
//
// The embedded page is trusted as-is when it is complete (Total within
// MaxResults); only a truncated page triggers the secondary fetch, whose
// result is unioned with the embedded entries. Candidates are then filtered
// to the target author and the date range, and deduplicated by ID keeping
// the first occurrence.
func Reconcile(ctx context.Context, fetcher Fetcher, issue Issue, accountID string, r week.DateRange) (Reconciled, error) {
	candidates := issue.Worklog.Worklogs

	if issue.Worklog.Truncated() {
		log.Debug().
			Str("issue", issue.Key).
			Int("total", issue.Worklog.Total).
			Int("maxResults", issue.Worklog.MaxResults).
			Msg("Embedded worklog page truncated, fetching full set")

		page, err := fetcher.IssueWorklogs(ctx, issue.Key, r.StartMillis(), r.EndMillis())
		if err != nil {
			return Reconciled{}, fmt.Errorf("fetch worklogs for %s: %w", issue.Key, err)
		}
		candidates = append(append([]Worklog(nil), candidates...), page.Worklogs...)
	}

	seen := make(map[string]struct{}, len(candidates))
	result := make([]Worklog, 0, len(candidates))
	for _, w := range candidates {
		if w.Author.AccountID != accountID {
			continue
		}
		if !r.Contains(w.Started) {
			continue
		}
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		result = append(result, w)
	}

	return Reconciled{Issue: issue, Worklogs: result}, nil
}
