package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/eventmanager/internal/config"
	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/google"
)

type stubTokenProvider struct {
	accounts map[string]bool
}

func (p stubTokenProvider) GetTokenForAccount(_ context.Context, account string) (*oauth2.Token, error) {
	if !p.accounts[account] {
		return nil, errors.New("no token")
	}
	return &oauth2.Token{AccessToken: "token-" + account, TokenType: "Bearer"}, nil
}

func (p stubTokenProvider) HasTokenForAccount(account string) bool {
	return p.accounts[account]
}

func newTestContext(t *testing.T, accounts ...string) *ServerContext {
	t.Helper()
	known := make(map[string]bool)
	for _, a := range accounts {
		known[a] = true
	}
	sc, err := NewServerContext(context.Background(), config.Default(), WithTokenProvider(stubTokenProvider{accounts: known}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestNewServerContextRequiresConfig(t *testing.T) {
	_, err := NewServerContext(context.Background(), nil)
	assert.Error(t, err)
}

func TestManagerForAccountWithoutToken(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.ManagerForAccount("work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eventmanager auth --account work")
}

func TestManagerForAccountCreatesAndCaches(t *testing.T) {
	t.Setenv(google.EnvClientID, "client")
	t.Setenv(google.EnvClientSecret, "secret")
	sc := newTestContext(t, "default")

	first, err := sc.Manager()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := sc.ManagerForAccount("")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestManagerForAccountMissingCredentials(t *testing.T) {
	t.Setenv(google.EnvClientID, "")
	t.Setenv(google.EnvClientSecret, "")
	sc := newTestContext(t, "default")
	sc.cfg.CredentialsFile = t.TempDir() + "/missing.json"

	_, err := sc.Manager()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetManagerForAccount(t *testing.T) {
	sc := newTestContext(t)
	m := events.NewManager(nil)
	sc.SetManagerForAccount("work", m)

	got, err := sc.ManagerForAccount("work")
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func TestShutdown(t *testing.T) {
	sc := newTestContext(t)
	sc.SetManagerForAccount("default", events.NewManager(nil))

	require.NoError(t, sc.Shutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Error(t, sc.Context().Err())

	_, err := sc.Manager()
	assert.ErrorIs(t, err, ErrShutdown)
}
