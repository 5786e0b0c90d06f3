package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/config"
	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/logging"
	"github.com/teemow/eventmanager/internal/server"
)

// version will be set by main
var version = "dev"

// SetVersion sets the version reported by the CLI and the MCP server.
func SetVersion(v string) {
	version = v
}

// cliContext carries what the subcommands share once flags are parsed.
type cliContext struct {
	configPath string
	account    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger

	// manager, when set, is used instead of one built from stored credentials.
	manager *events.Manager
	sc      *server.ServerContext
}

// load reads the configuration and applies flag overrides.
func (c *cliContext) load(stderr io.Writer) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.account != "" {
		cfg.Account = c.account
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}
	if cfg.User != "" {
		logger = logger.With(logging.UserHash(cfg.User))
	}
	slog.SetDefault(logger)

	c.cfg = cfg
	c.logger = logger
	return nil
}

// serverContext returns the shared server context, creating it on first use.
func (c *cliContext) serverContext(ctx context.Context, opts ...server.Option) (*server.ServerContext, error) {
	if c.sc != nil {
		return c.sc, nil
	}
	sc, err := server.NewServerContext(ctx, c.cfg, append([]server.Option{server.WithLogger(c.logger)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server context: %w", err)
	}
	if c.manager != nil {
		sc.SetManagerForAccount(c.cfg.Account, c.manager)
	}
	c.sc = sc
	return sc, nil
}

// eventManager returns the manager for the configured account.
func (c *cliContext) eventManager(ctx context.Context) (*events.Manager, error) {
	if c.manager != nil {
		return c.manager, nil
	}
	sc, err := c.serverContext(ctx)
	if err != nil {
		return nil, err
	}
	return sc.Manager()
}

func (c *cliContext) close() {
	if c.sc != nil {
		_ = c.sc.Shutdown()
	}
}

// newRootCmd builds the command tree around cli.
func newRootCmd(cli *cliContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eventmanager",
		Short: "Manage Google Calendar events and their attendees",
		Long: `eventmanager creates, updates, searches, imports and exports events on a
Google Calendar and manages the guests invited to them.

It can run as:
  - A standalone CLI tool (default: lists the next upcoming events)
  - An MCP (Model Context Protocol) server for AI assistants`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.load(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			cli.close()
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "eventmanager version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cli.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/eventmanager/config.yaml)")
	flags.StringVar(&cli.account, "account", "", "Google account name to use (default: from config)")
	flags.StringVar(&cli.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&cli.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		newListCmd(cli),
		newViewCmd(cli),
		newSearchCmd(cli),
		newCreateCmd(cli),
		newTitleCmd(cli),
		newDatesCmd(cli),
		newOrganizerCmd(cli),
		newCancelCmd(cli),
		newDeleteCmd(cli),
		newAttendeesCmd(cli),
		newImportCmd(cli),
		newExportCmd(cli),
		newAuthCmd(cli),
		newServeCmd(cli),
		newGenerateDocsCmd(cli),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd := newRootCmd(&cliContext{})

	// If no subcommand is provided, list the upcoming events
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"list"}
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
