package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/instrumentation"
	"github.com/teemow/eventmanager/internal/logging"
	"github.com/teemow/eventmanager/internal/resources"
	"github.com/teemow/eventmanager/internal/server"
	"github.com/teemow/eventmanager/internal/tools/event_tools"
	"github.com/teemow/eventmanager/internal/tools/google_tools"
)

// MetricsConfig holds configuration for the metrics endpoint.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

func newServeCmd(cli *cliContext) *cobra.Command {
	var (
		yolo          bool
		metricsConfig MetricsConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server over stdio.

By default the server is read-only: only the listing, search and export tools
are registered. Use --yolo to also register the tools that create, change,
cancel, delete and import events.

Metrics:
  Set OTEL_METRICS_EXPORTER=prometheus and pass --metrics to serve /metrics,
  /healthz and /readyz on --metrics-addr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !metricsConfig.Enabled && os.Getenv("METRICS_ENABLED") == "true" {
				metricsConfig.Enabled = true
			}
			if addr := os.Getenv("METRICS_ADDR"); addr != "" && !cmd.Flags().Changed("metrics-addr") {
				metricsConfig.Addr = addr
			}
			return runServe(cmd.Context(), cli, yolo, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (create, update, cancel, delete, import)")
	cmd.Flags().BoolVar(&metricsConfig.Enabled, "metrics", false, "Serve Prometheus metrics and health endpoints")
	cmd.Flags().StringVar(&metricsConfig.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

func runServe(ctx context.Context, cli *cliContext, yolo bool, metricsConfig MetricsConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.WithOperation(cli.logger, "serve")

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	var opts []server.Option
	if provider.Enabled() {
		opts = append(opts, server.WithMetrics(provider.Metrics()))
	}
	serverContext, err := cli.serverContext(shutdownCtx, opts...)
	if err != nil {
		return err
	}

	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled {
		health := server.NewHealthChecker(serverContext)
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
			Health:                  health,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", logging.Err(err))
			}
		}()
		health.SetReady(true)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	mcpSrv := mcpserver.NewMCPServer("eventmanager", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	// readOnly is the inverse of yolo
	readOnly := !yolo
	if readOnly {
		logger.Info("starting server in read-only mode (use --yolo to enable write operations)")
	} else {
		logger.Info("starting server with write operations enabled")
	}

	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	return runStdioServer(shutdownCtx, mcpSrv)
}

// runStdioServer serves MCP on stdin/stdout until the client disconnects or
// ctx is cancelled.
func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		// Give in-flight requests a moment to finish.
		select {
		case <-serverDone:
		case <-time.After(2 * time.Second):
		}
		return nil
	}
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Events",
			register: func() error {
				return event_tools.RegisterEventTools(mcpSrv, sc, readOnly)
			},
		},
		{
			name: "Google",
			register: func() error {
				return google_tools.RegisterGoogleTools(mcpSrv, sc)
			},
		},
		{
			name: "Event Resources",
			register: func() error {
				return resources.RegisterEventResources(mcpSrv, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
