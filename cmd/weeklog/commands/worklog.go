package commands

import (
	"fmt"
	"strings"
	"time"

	"weeklog/internal/timespent"

	"github.com/spf13/cobra"
)

var (
	addStarted  string
	editStarted string
)

// startedLayouts are the accepted formats for the --started flag, tried in
// order. Date-less values resolve to today.
var startedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseStarted(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("15:04", raw); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	for _, layout := range startedLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized start time %q, try 2006-01-02T15:04 or 15:04", raw)
}

func normalizeDuration(args []string) (string, error) {
	raw := strings.Join(args, " ")
	normalized := timespent.Normalize(raw)
	if normalized == "" {
		return "", fmt.Errorf("no valid duration in %q, expected tokens like 2h 30m", raw)
	}
	return normalized, nil
}

var addCmd = &cobra.Command{
	Use:   "add <issue-key> <duration>",
	Short: "Log time on an issue",
	Long: `Logs time on an issue. The duration is cleaned into Jira time-spent syntax
before submission, so "2h 30m!!" becomes "2h 30m". Without --started the
worklog starts now.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		issueKey := args[0]

		timeSpent, err := normalizeDuration(args[1:])
		if err != nil {
			return err
		}
		started, err := parseStarted(addStarted)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.TestIssueKey(ctx, issueKey); err != nil {
			return err
		}
		if err := client.AddWorklog(ctx, issueKey, started, timeSpent); err != nil {
			return err
		}
		fmt.Printf("Logged %s on %s\n", timeSpent, issueKey)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <issue-key> <worklog-id> <duration>",
	Short: "Update an existing worklog",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		issueKey, worklogID := args[0], args[1]

		if editStarted == "" {
			return fmt.Errorf("--started is required when editing a worklog")
		}
		timeSpent, err := normalizeDuration(args[2:])
		if err != nil {
			return err
		}
		started, err := parseStarted(editStarted)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.EditWorklog(ctx, worklogID, issueKey, started, timeSpent); err != nil {
			return err
		}
		fmt.Printf("Updated worklog %s on %s to %s\n", worklogID, issueKey, timeSpent)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <issue-key> <worklog-id>",
	Short: "Remove a worklog from an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		issueKey, worklogID := args[0], args[1]

		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.DeleteWorklog(cmd.Context(), worklogID, issueKey); err != nil {
			return err
		}
		fmt.Printf("Deleted worklog %s from %s\n", worklogID, issueKey)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addStarted, "started", "", "start time (e.g. 09:30 or 2006-01-02T15:04), default now")
	editCmd.Flags().StringVar(&editStarted, "started", "", "start time (e.g. 09:30 or 2006-01-02T15:04)")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
}
