// Package tracker orchestrates aggregation runs: issue search, parallel
// per-issue worklog reconciliation, and day bucketizing, driven by debounced
// week-window requests.
package tracker

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"weeklog/internal/jira"
	"weeklog/internal/week"
	"weeklog/internal/worklog"
)

// State is the pipeline's externally visible phase.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateReconciling
	StateBucketized
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReconciling:
		return "reconciling"
	case StateBucketized:
		return "bucketized"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Result is the outcome of one aggregation run.
type Result struct {
	Window  week.Window
	Range   week.DateRange
	Buckets []worklog.DayBucket

	// DroppedIssues lists issue keys whose secondary worklog fetch failed.
	// The run still completes without them.
	DroppedIssues []string

	// Err is set when the primary issue search failed; Buckets is then nil
	// and the run surfaces as "no data".
	Err error
}

// Options tune a Pipeline.
type Options struct {
	// Debounce is the settle delay applied to window requests, absorbing
	// rapid week navigation. Zero means 300ms.
	Debounce time.Duration

	// Location is the calendar used to derive week boundaries. Nil means
	// the local time zone.
	Location *time.Location
}

// Pipeline runs aggregations against a Jira client for one session. Requests
// supersede each other: only the most recent window's result is ever
// delivered. In-flight runs are not forcibly aborted; their results carry
// the run token and are discarded on arrival if a newer request has been
// accepted since.
type Pipeline struct {
	client  jira.Client
	session Session
	opts    Options

	state atomic.Int32

	requests chan week.Window
	refresh  chan struct{}
	results  chan Result
}

type completion struct {
	token  uint64
	result Result
}

// New creates a Pipeline. Run must be called before requests are served.
func New(client jira.Client, session Session, opts Options) *Pipeline {
	if opts.Debounce == 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Pipeline{
		client:   client,
		session:  session,
		opts:     opts,
		requests: make(chan week.Window, 16),
		refresh:  make(chan struct{}, 1),
		results:  make(chan Result, 16),
	}
}

// State returns the pipeline's current phase.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Results delivers the outcome of every run that was still current when it
// finished. Superseded runs never appear here.
func (p *Pipeline) Results() <-chan Result {
	return p.results
}

// Request asks for a new week window. Requests are debounced; only the last
// one within the settle delay starts a run.
func (p *Pipeline) Request(w week.Window) {
	p.requests <- w
}

// Refresh re-runs the current window immediately, discarding the previous
// result. Called after a successful add/edit/delete mutation.
func (p *Pipeline) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run drives the pipeline until ctx is done. It owns all pipeline state;
// runs execute on goroutines and report back through a completion channel,
// so no locking is needed beyond the channels themselves.
func (p *Pipeline) Run(ctx context.Context) {
	var (
		token   uint64
		current week.Window
		pending *week.Window
		done    = make(chan completion, 16)
	)

	timer := time.NewTimer(p.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	start := func(w week.Window) {
		token++
		current = w
		p.state.Store(int32(StateFetching))
		go func(runToken uint64, window week.Window) {
			done <- completion{token: runToken, result: p.execute(ctx, window, runToken)}
		}(token, w)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case w := <-p.requests:
			pending = &w
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.opts.Debounce)

		case <-timer.C:
			if pending != nil {
				start(*pending)
				pending = nil
			}

		case <-p.refresh:
			if token == 0 && pending == nil {
				continue
			}
			if pending != nil {
				start(*pending)
				pending = nil
				continue
			}
			start(current)

		case c := <-done:
			if c.token != token {
				log.Debug().
					Uint64("token", c.token).
					Uint64("current", token).
					Str("window", c.result.Window.String()).
					Msg("Discarding superseded run result")
				continue
			}
			if c.result.Err != nil {
				p.state.Store(int32(StateErrored))
			} else {
				p.state.Store(int32(StateBucketized))
			}
			select {
			case p.results <- c.result:
			default:
				log.Warn().Msg("Result channel full, dropping run result")
			}
		}
	}
}

// RunOnce performs a single synchronous aggregation for the window,
// bypassing the debounce machinery. Used by one-shot commands.
func (p *Pipeline) RunOnce(ctx context.Context, w week.Window) Result {
	return p.execute(ctx, w, 0)
}

func (p *Pipeline) execute(ctx context.Context, w week.Window, token uint64) Result {
	r := w.Range(p.opts.Location)
	result := Result{Window: w, Range: r}

	log.Info().
		Str("window", w.String()).
		Str("start", week.FormatDay(r.Start)).
		Str("end", week.FormatDay(r.End)).
		Uint64("token", token).
		Msg("Aggregation run starting")

	issues, err := p.client.SearchWorklogIssues(ctx, r)
	if err != nil {
		log.Error().Err(err).Str("window", w.String()).Msg("Issue search failed, aborting run")
		result.Err = err
		return result
	}

	p.state.Store(int32(StateReconciling))

	var (
		mu         sync.Mutex
		reconciled = make([]worklog.Reconciled, len(issues))
		ok         = make([]bool, len(issues))
		dropped    []string
	)

	// Per-issue reconciliations fan out without a concurrency cap: at most
	// one secondary request per issue. A failed secondary fetch drops that
	// issue from the run instead of aborting it.
	g, gctx := errgroup.WithContext(ctx)
	for i, issue := range issues {
		g.Go(func() error {
			rec, err := worklog.Reconcile(gctx, p.client, issue, p.session.User.AccountID, r)
			if err != nil {
				log.Warn().Err(err).Str("issue", issue.Key).Msg("Dropping issue from run")
				mu.Lock()
				dropped = append(dropped, issue.Key)
				mu.Unlock()
				return nil
			}
			reconciled[i] = rec
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	kept := make([]worklog.Reconciled, 0, len(reconciled))
	for i, rec := range reconciled {
		if ok[i] {
			kept = append(kept, rec)
		}
	}
	sort.Strings(dropped)

	result.Buckets = worklog.Bucketize(kept, r)
	result.DroppedIssues = dropped

	log.Info().
		Str("window", w.String()).
		Int("issues", len(kept)).
		Int("dropped", len(dropped)).
		Int("buckets", len(result.Buckets)).
		Msg("Aggregation run complete")

	return result
}
