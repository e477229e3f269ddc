package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"weeklog/internal/export"
	"weeklog/internal/tracker"
	"weeklog/internal/week"

	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <file> [YYYY-Www]",
	Short: "Write a week report to a CSV or Excel file",
	Long: `Runs the weekly aggregation and writes the day summary plus the worklog
detail to the given file. The format is taken from the file extension unless
--format overrides it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		window := week.Current()
		if len(args) == 2 {
			parsed, err := week.Parse(args[1])
			if err != nil {
				return err
			}
			window = parsed
		}

		format := exportFormat
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(path), ".")
		}
		writer, err := export.WriterForFormat(format)
		if err != nil {
			return err
		}

		client, sess, err := newSession(ctx)
		if err != nil {
			return err
		}
		pipeline := tracker.New(client, sess, tracker.Options{Location: time.Local})
		result := pipeline.RunOnce(ctx, window)
		if result.Err != nil {
			return result.Err
		}

		hoursPerDay := sess.Settings.WorkingHoursPerDay
		if hoursPerDay == 0 {
			hoursPerDay = cfg.WorkingHoursPerDay
		}
		report := export.Report{
			Window:             result.Window,
			WorkingHoursPerDay: hoursPerDay,
			Buckets:            result.Buckets,
		}
		if err := writer.Write(path, report); err != nil {
			return err
		}

		fmt.Printf("Wrote %s to %s\n", result.Window, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv or excel (default from file extension)")
	rootCmd.AddCommand(exportCmd)
}
