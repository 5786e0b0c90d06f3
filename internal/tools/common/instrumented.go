package common

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/instrumentation"
	"github.com/teemow/eventmanager/internal/logging"
	"github.com/teemow/eventmanager/internal/server"
)

// errToolResult marks spans of tools that answered with an error result.
var errToolResult = errors.New("tool returned an error result")

// InstrumentedToolHandler wraps a tool handler with a span, invocation
// metrics and a debug log line.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		account := GetAccountFromArgs(request.GetArguments(), sc.DefaultAccount())

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.NewSpanAttributeBuilder().WithAccount(account).Build()...)

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		spanErr := err
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if spanErr == nil {
				spanErr = errToolResult
			}
		}
		instrumentation.EndSpan(span, spanErr)
		sc.Metrics().RecordToolInvocation(ctx, toolName, status, account, duration)

		sc.Logger().Debug("tool invoked",
			logging.Tool(toolName),
			logging.Account(account),
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration),
			logging.Err(err),
		)

		return result, err
	}
}
