package commands

import (
	"fmt"
	"strings"

	"weeklog/internal/jira"

	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues [query]",
	Short: "Search issues by free text for key completion",
	Long: `Searches the issue picker by free text and prints matching keys. Without
a query, lists recently touched issues.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.TrimSpace(strings.Join(args, " "))

		client, err := newClient()
		if err != nil {
			return err
		}

		var picks []jira.PickedIssue
		if query == "" {
			picks, err = client.RecentIssues(ctx)
		} else {
			picks, err = client.PickIssues(ctx, query)
		}
		if err != nil {
			return err
		}

		if len(picks) == 0 {
			fmt.Println("No issues found")
			return nil
		}
		for _, pick := range picks {
			fmt.Printf("%-12s %s\n", pick.Key, pick.SummaryText)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}
