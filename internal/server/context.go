package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/eventmanager/internal/calendar"
	"github.com/teemow/eventmanager/internal/config"
	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/google"
	"github.com/teemow/eventmanager/internal/instrumentation"
	"github.com/teemow/eventmanager/internal/logging"
)

// ErrShutdown is returned once the server context has been shut down.
var ErrShutdown = errors.New("server is shutting down")

// ServerContext holds the state shared by the MCP tools
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Config
	provider google.TokenProvider
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
	managers map[string]*events.Manager // Maps account name to its event manager
	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithTokenProvider replaces the file based token provider.
func WithTokenProvider(p google.TokenProvider) Option {
	return func(sc *ServerContext) {
		if p != nil {
			sc.provider = p
		}
	}
}

// WithMetrics records calendar and tool metrics on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithLogger sets the logger handed to managers and clients.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) {
		if logger != nil {
			sc.logger = logger
		}
	}
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, cfg *config.Config, opts ...Option) (*ServerContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		cfg:      cfg,
		provider: google.NewFileTokenProvider(),
		logger:   slog.Default(),
		managers: make(map[string]*events.Manager),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Metrics returns the metrics recorder, which may be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Logger returns the base logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// DefaultAccount returns the configured account name.
func (sc *ServerContext) DefaultAccount() string {
	return sc.cfg.Account
}

// HasToken reports whether account has a stored OAuth token.
func (sc *ServerContext) HasToken(account string) bool {
	return sc.provider.HasTokenForAccount(account)
}

// ManagerForAccount returns the event manager for account.
// Creates and caches the manager if it doesn't exist yet.
func (sc *ServerContext) ManagerForAccount(account string) (*events.Manager, error) {
	if account == "" {
		account = sc.cfg.Account
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil, ErrShutdown
	}
	if m, ok := sc.managers[account]; ok {
		return m, nil
	}

	if !sc.provider.HasTokenForAccount(account) {
		return nil, errors.New(google.GetAuthenticationErrorMessage(account))
	}

	conf, err := google.OAuthConfig(sc.cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	logger := logging.WithAccount(sc.logger, account)
	client, err := calendar.NewClientForAccount(sc.ctx, account, conf, sc.provider,
		calendar.WithCalendarID(sc.cfg.CalendarID),
		calendar.WithRateLimiter(calendar.NewRateLimiter(sc.cfg.CalendarRateLimit())),
		calendar.WithMetrics(sc.metrics),
		calendar.WithLogger(sc.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client for account %s: %w", account, err)
	}

	logger.Debug("calendar client created", logging.Account(client.Account()), "calendar_id", client.CalendarID())

	m := events.NewManager(client, events.WithLogger(logger))
	sc.managers[account] = m
	return m, nil
}

// Manager returns the event manager for the default account
func (sc *ServerContext) Manager() (*events.Manager, error) {
	return sc.ManagerForAccount(sc.cfg.Account)
}

// SetManagerForAccount sets the event manager for a specific account
func (sc *ServerContext) SetManagerForAccount(account string, m *events.Manager) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.managers[account] = m
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
