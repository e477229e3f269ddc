package commands

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"weeklog/internal/jira"
	"weeklog/internal/session"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const apiTokenURL = "https://id.atlassian.com/manage-profile/security/api-tokens"

var (
	loginEmail string
	loginToken string
	openTokens bool
)

var loginCmd = &cobra.Command{
	Use:   "login <base-url>",
	Short: "Save a Jira Cloud account for subsequent commands",
	Long: `Validates the instance URL against its server info endpoint, verifies the
credentials, and stores the account locally. Use --open to open the Atlassian
API token page in your browser first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		baseURL := strings.TrimRight(args[0], "/")

		if openTokens {
			if err := browser.OpenURL(apiTokenURL); err != nil {
				log.Warn().Err(err).Msg("Could not open browser")
				fmt.Printf("Create an API token at %s\n", apiTokenURL)
			}
		}

		if loginEmail == "" || loginToken == "" {
			return errors.New("both --email and --token are required")
		}

		info, err := jira.FetchServerInfo(ctx, baseURL)
		if err != nil {
			return fmt.Errorf("could not reach Jira at %s: %w", baseURL, err)
		}
		log.Info().
			Str("title", info.ServerTitle).
			Str("version", info.Version).
			Str("deployment", info.DeploymentType).
			Msg("Jira instance found")

		encoded := base64.StdEncoding.EncodeToString([]byte(loginEmail + ":" + loginToken))
		client := jira.NewClient(jira.Config{
			BaseURL:    baseURL,
			EncodedKey: encoded,
			Timeout:    cfg.Jira.Timeout,
		})
		me, err := client.Myself(ctx)
		if err != nil {
			return fmt.Errorf("credential check failed: %w", err)
		}

		store, err := session.Open(cfg.SessionPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(session.Account{BaseURL: baseURL, EncodedKey: encoded}); err != nil {
			return err
		}

		fmt.Printf("Logged in to %s as %s\n", baseURL, me.DisplayName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved Jira account",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.Open(cfg.SessionPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Atlassian account email")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Atlassian API token")
	loginCmd.Flags().BoolVar(&openTokens, "open", false, "open the API token page in the browser")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
