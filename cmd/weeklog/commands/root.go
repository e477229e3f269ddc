package commands

import (
	"context"
	"errors"

	"weeklog/internal/config"
	"weeklog/internal/jira"
	"weeklog/internal/logging"
	"weeklog/internal/session"
	"weeklog/internal/tracker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "weeklog",
	Short: "Weeklog is a weekly Jira worklog tracker",
	Long: `Weeklog reconciles your Jira worklogs into a gap-free weekly view, one
bucket per calendar day, and lets you log, edit, and export time from the
command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Weeklog starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeek(cmd.Context(), args)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// resolveJiraConfig prefers env-provided credentials and falls back to the
// account saved by a previous login.
func resolveJiraConfig() (jira.Config, error) {
	if cfg.Jira.BaseURL != "" && cfg.Jira.EncodedKey != "" {
		return cfg.Jira, nil
	}

	store, err := session.Open(cfg.SessionPath)
	if err != nil {
		return jira.Config{}, err
	}
	defer store.Close()

	account, err := store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoAccount) {
			return jira.Config{}, errors.New("not logged in, run 'weeklog login <base-url>' or set JIRA_URL, JIRA_EMAIL and JIRA_API_TOKEN")
		}
		return jira.Config{}, err
	}

	resolved := cfg.Jira
	resolved.BaseURL = account.BaseURL
	resolved.EncodedKey = account.EncodedKey
	return resolved, nil
}

func newClient() (jira.Client, error) {
	jiraCfg, err := resolveJiraConfig()
	if err != nil {
		return nil, err
	}
	return jira.NewClient(jiraCfg), nil
}

func newSession(ctx context.Context) (jira.Client, tracker.Session, error) {
	client, err := newClient()
	if err != nil {
		return nil, tracker.Session{}, err
	}
	sess, err := tracker.NewSession(ctx, client)
	if err != nil {
		return nil, tracker.Session{}, err
	}
	return client, sess, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
