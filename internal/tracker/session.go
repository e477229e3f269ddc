package tracker

import (
	"context"
	"fmt"

	"weeklog/internal/jira"
	"weeklog/internal/worklog"
)

// Session is the read-only per-run context of the pipeline: who is logging
// time and under which working schedule. It is captured once and passed into
// every run rather than read from shared state.
type Session struct {
	User     worklog.Author
	Settings jira.TrackingSettings
}

// NewSession resolves the current user and the instance tracking settings.
func NewSession(ctx context.Context, client jira.Client) (Session, error) {
	user, err := client.Myself(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("resolve current user: %w", err)
	}
	settings, err := client.Settings(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("resolve tracking settings: %w", err)
	}
	return Session{User: user, Settings: settings}, nil
}
