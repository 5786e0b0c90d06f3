package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/google"
	"github.com/teemow/eventmanager/internal/logging"
)

func newAuthCmd(cli *cliContext) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Calendar",
		Long: `Print the Google OAuth URL, then read the authorization code and store
the token for the selected account.

The OAuth client is read from GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET, or
from the credentials file named in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account := cli.cfg.Account

			conf, err := google.OAuthConfig(cli.cfg.CredentialsFile)
			if err != nil {
				return err
			}

			if code == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Visit this URL to authorize account %q:\n\n  %s\n\nAuthorization code: ",
					account, google.GetAuthURL(conf))
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read authorization code: %w", err)
				}
				code = strings.TrimSpace(line)
			}
			if code == "" {
				return fmt.Errorf("authorization code is required")
			}

			if err := google.ExchangeAndSave(cmd.Context(), conf, account, code); err != nil {
				return fmt.Errorf("failed to save token for account %s: %w", account, err)
			}
			cli.logger.Info("account authorized", logging.Account(account))
			fmt.Fprintf(cmd.OutOrStdout(), "Authorization successful for account %q\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code (default: prompt)")

	return cmd
}
