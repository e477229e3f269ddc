package commands

import (
	"context"
	"fmt"
	"time"

	"weeklog/internal/tracker"
	"weeklog/internal/visuals"
	"weeklog/internal/week"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var showChart bool

var weekCmd = &cobra.Command{
	Use:   "week [YYYY-Www]",
	Short: "Show the reconciled worklog week, bucketed by day",
	Long: `Fetches every issue you logged time on within the week, reconciles
truncated worklog pages against the worklog endpoint, and prints one bucket
per calendar day. Without an argument the current ISO week is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeek(cmd.Context(), args)
	},
}

func runWeek(ctx context.Context, args []string) error {
	window := week.Current()
	if len(args) == 1 {
		parsed, err := week.Parse(args[0])
		if err != nil {
			return err
		}
		window = parsed
	}

	client, sess, err := newSession(ctx)
	if err != nil {
		return err
	}

	pipeline := tracker.New(client, sess, tracker.Options{
		Debounce: cfg.Debounce,
		Location: time.Local,
	})
	result := pipeline.RunOnce(ctx, window)
	if result.Err != nil {
		return result.Err
	}

	hoursPerDay := sess.Settings.WorkingHoursPerDay
	if hoursPerDay == 0 {
		hoursPerDay = cfg.WorkingHoursPerDay
	}

	fmt.Print(visuals.RenderWeekTable(result.Window, result.Buckets, hoursPerDay))
	if showChart {
		fmt.Println()
		fmt.Println(visuals.GenerateWeekChart(result.Window, result.Buckets, hoursPerDay))
	}

	for _, key := range result.DroppedIssues {
		log.Warn().Str("issue", key).Msg("Worklogs dropped, issue fetch failed")
	}
	return nil
}

func init() {
	weekCmd.Flags().BoolVar(&showChart, "chart", false, "print a Mermaid bar chart of hours per day")
	rootCmd.Flags().BoolVar(&showChart, "chart", false, "print a Mermaid bar chart of hours per day")
	rootCmd.AddCommand(weekCmd)
}
