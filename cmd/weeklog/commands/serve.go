package commands

import (
	"weeklog/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Exposes the weekly tracker as MCP tools (get_week, add_worklog,
edit_worklog, delete_worklog, normalize_duration, find_issues) over a
stdio JSON-RPC loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, sess, err := newSession(ctx)
		if err != nil {
			return err
		}

		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(client, sess)
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
