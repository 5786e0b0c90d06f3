// Package config loads the eventmanager configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teemow/eventmanager/internal/calendar"
	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/google"
	"github.com/teemow/eventmanager/internal/logging"
)

// Environment variables that override file values.
const (
	EnvAccount     = "EVENTMANAGER_ACCOUNT"
	EnvUser        = "EVENTMANAGER_USER"
	EnvCalendarID  = "EVENTMANAGER_CALENDAR_ID"
	EnvCredentials = "EVENTMANAGER_CREDENTIALS"
	EnvLogLevel    = "EVENTMANAGER_LOG_LEVEL"
	EnvLogFormat   = "EVENTMANAGER_LOG_FORMAT"
	EnvExportPath  = "EVENTMANAGER_EXPORT_PATH"
	EnvRateLimit   = "EVENTMANAGER_RATE_LIMIT"
)

const (
	// DefaultCredentialsFile is the OAuth client file looked up when none is configured.
	DefaultCredentialsFile = "credentials.json"
	// DefaultLogLevel is used when log_level is unset.
	DefaultLogLevel = "info"

	appDirName = "eventmanager"
	fileName   = "config.yaml"
)

// RateLimit bounds outgoing calendar requests.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Config is the top-level application configuration.
type Config struct {
	// Account selects the stored OAuth token.
	Account string `yaml:"account"`
	// User is the email of the signed-in user. It is only logged as a hash.
	User string `yaml:"user,omitempty"`
	// CalendarID is the Google calendar all operations target.
	CalendarID string `yaml:"calendar_id"`
	// CredentialsFile is the OAuth client JSON downloaded from Google Cloud.
	CredentialsFile string `yaml:"credentials_file"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// ExportPath is where export writes when no path is given.
	ExportPath string `yaml:"export_path"`

	RateLimit RateLimit `yaml:"rate_limit"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// DefaultPath returns $XDG_CONFIG_HOME/eventmanager/config.yaml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, fileName), nil
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Account == "" {
		c.Account = google.DefaultAccount
	}
	if c.CalendarID == "" {
		c.CalendarID = calendar.DefaultCalendarID
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = DefaultCredentialsFile
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = logging.FormatText
	}
	if c.ExportPath == "" {
		c.ExportPath = events.DefaultExportPath
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = calendar.DefaultRateLimit.RequestsPerSecond
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = calendar.DefaultRateLimit.Burst
	}
}

// Load reads path, falling back to defaults when the file does not exist,
// and applies environment overrides. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML with 0600 permissions.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		EnvAccount:     &c.Account,
		EnvUser:        &c.User,
		EnvCalendarID:  &c.CalendarID,
		EnvCredentials: &c.CredentialsFile,
		EnvLogLevel:    &c.LogLevel,
		EnvLogFormat:   &c.LogFormat,
		EnvExportPath:  &c.ExportPath,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	if v := os.Getenv(EnvRateLimit); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateLimit, v, err)
		}
		c.RateLimit.RequestsPerSecond = rps
	}
	return nil
}

// Validate checks the normalized configuration.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", c.LogFormat, logging.FormatText, logging.FormatJSON)
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be positive, got %v", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be positive, got %d", c.RateLimit.Burst)
	}
	return nil
}

// CalendarRateLimit converts the rate limit section for the calendar client.
func (c *Config) CalendarRateLimit() calendar.RateLimitConfig {
	return calendar.RateLimitConfig{
		RequestsPerSecond: c.RateLimit.RequestsPerSecond,
		Burst:             c.RateLimit.Burst,
	}
}
