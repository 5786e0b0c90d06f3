package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{EnvAccount, EnvUser, EnvCalendarID, EnvCredentials, EnvLogLevel, EnvLogFormat, EnvExportPath, EnvRateLimit} {
		t.Setenv(env, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	assert.Equal(t, "export.json", cfg.ExportPath)
	assert.Equal(t, "default", cfg.Account)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
account: work
calendar_id: team@example.com
log_level: debug
log_format: json
rate_limit:
  requests_per_second: 2.5
  burst: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "work", cfg.Account)
	assert.Equal(t, "team@example.com", cfg.CalendarID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account: work\n"), 0o600))

	t.Setenv(EnvAccount, "personal")
	t.Setenv(EnvUser, "me@example.com")
	t.Setenv(EnvExportPath, "/tmp/out.json")
	t.Setenv(EnvRateLimit, "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "personal", cfg.Account)
	assert.Equal(t, "me@example.com", cfg.User)
	assert.Equal(t, "/tmp/out.json", cfg.ExportPath)
	assert.Equal(t, 1.0, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "malformed yaml", content: "account: [unclosed"},
		{name: "bad log level", content: "log_level: loud\n"},
		{name: "bad log format", content: "log_format: xml\n"},
		{name: "negative rate", content: "rate_limit:\n  requests_per_second: -1\n"},
		{name: "bad rate env", env: map[string]string{EnvRateLimit: "fast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Account = "work"

	require.NoError(t, Save(path, cfg))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/eventmanager/config.yaml", path)
}

func TestCalendarRateLimit(t *testing.T) {
	cfg := Default()
	rl := cfg.CalendarRateLimit()
	assert.Equal(t, cfg.RateLimit.RequestsPerSecond, rl.RequestsPerSecond)
	assert.Equal(t, cfg.RateLimit.Burst, rl.Burst)
}
