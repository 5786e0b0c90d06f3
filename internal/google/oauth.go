package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// DefaultAccount is the account name used when none is configured.
const DefaultAccount = "default"

// Environment variables that take precedence over the credentials file.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
)

const (
	cacheDirName = "eventmanager"
	oobRedirect  = "urn:ietf:wg:oauth:2.0:oob"
)

// ErrNoToken is returned when no token is stored for an account.
var ErrNoToken = errors.New("no Google OAuth token found")

// Scopes requested during consent.
var Scopes = []string{calendar.CalendarScope}

var accountNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName rejects names that are unsafe in a file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !accountNameRegex.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, '-' and '_' are allowed", account)
	}
	return nil
}

// OAuthConfig builds the OAuth2 client configuration. GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET win over the credentials file.
func OAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	clientID, clientSecret := os.Getenv(EnvClientID), os.Getenv(EnvClientSecret)
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  oobRedirect,
			Scopes:       Scopes,
			Endpoint:     google.Endpoint,
		}, nil
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("%s not found: set %s and %s or download the OAuth client file", credentialsFile, EnvClientID, EnvClientSecret)
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	conf, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	conf.RedirectURL = oobRedirect
	return conf, nil
}

// GetAuthURL returns the consent URL the user opens to authorize access.
func GetAuthURL(conf *oauth2.Config) string {
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// ExchangeAndSave trades an authorization code for a token and stores it.
func ExchangeAndSave(ctx context.Context, conf *oauth2.Config, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	tok, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return SaveTokenForAccount(account, tok)
}

// tokenDir returns the directory holding token files.
func tokenDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate cache directory: %w", err)
	}
	return filepath.Join(dir, cacheDirName), nil
}

// getTokenFilePath returns the token file for an account, or "" when the
// cache directory cannot be determined.
func getTokenFilePath(account string) string {
	dir, err := tokenDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "google-"+account+".token")
}

// HasTokenForAccount reports whether a token file exists for the account.
func HasTokenForAccount(account string) bool {
	if validateAccountName(account) != nil {
		return false
	}
	path := getTokenFilePath(account)
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// LoadTokenForAccount reads the stored token of an account.
func LoadTokenForAccount(account string) (*oauth2.Token, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	f, err := os.Open(getTokenFilePath(account))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w for account %s", ErrNoToken, account)
		}
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("invalid token file for account %s: %w", account, err)
	}
	return tok, nil
}

// SaveTokenForAccount writes the token of an account with owner-only permissions.
func SaveTokenForAccount(account string, tok *oauth2.Token) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	dir, err := tokenDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.OpenFile(getTokenFilePath(account), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return f.Close()
}

// GetAuthenticationErrorMessage tells the user how to authorize an account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("Google Calendar access is not authorized for account %q. Run 'eventmanager auth --account %s' to grant access.", account, account)
}
