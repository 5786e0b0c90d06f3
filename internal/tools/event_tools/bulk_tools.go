package event_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/ical"
	"github.com/teemow/eventmanager/internal/instrumentation"
	"github.com/teemow/eventmanager/internal/server"
)

// Export formats.
const (
	formatJSON = "json"
	formatICS  = "ics"
)

func registerExportTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addTool(s, sc, mcp.NewTool("events_export",
		mcp.WithDescription("Write events to a local file as a JSON array or an iCalendar file. Search criteria narrow the export."),
		accountParam(),
		mcp.WithString("path", mcp.Description("Output file (default: configured export path)")),
		mcp.WithString("format",
			mcp.Enum(formatJSON, formatICS),
			mcp.Description("Output format (default: json)"),
		),
		mcp.WithString("title", mcp.Description("Only events whose title contains this")),
		mcp.WithString("type", mcp.Description("Only events whose meeting type contains this")),
		mcp.WithString("address", mcp.Description("Only events whose address contains this")),
		mcp.WithString("year", mcp.Description("Only events whose start or end year contains this")),
		mcp.WithString("month", mcp.Description("Only events whose start or end month contains this")),
		mcp.WithString("day", mcp.Description("Only events whose start or end day contains this")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExport(ctx, request, sc)
	})
}

func registerImportTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addTool(s, sc, mcp.NewTool("events_import",
		mcp.WithDescription("Import events from a local JSON file holding an array of events"),
		accountParam(),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to a .json file")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleImport(ctx, request, sc)
	})
}

func handleExport(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	format := stringArg(args, "format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatICS {
		return mcp.NewToolResultError(fmt.Sprintf("format must be %q or %q", formatJSON, formatICS)), nil
	}
	path := stringArg(args, "path")
	if path == "" {
		path = sc.Config().ExportPath
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f := filterFromArgs(args)
	var records []*events.Record
	if f == (events.Filter{}) {
		records, err = m.ListAll(ctx)
	} else {
		records, err = m.Search(ctx, f)
	}
	if err != nil {
		return failed("export events", err), nil
	}

	if format == formatICS {
		err = ical.WriteFile(path, records)
	} else {
		err = events.ExportEvents(path, records)
	}
	if err != nil {
		return failed("export events", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Exported %d events to %s.", len(records), path)), nil
}

func handleImport(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path, res := requireString(args, "path")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	imported, err := m.ImportEvents(ctx, path)
	sc.Metrics().RecordEventsImported(ctx, instrumentation.StatusSuccess, len(imported))
	if err != nil {
		sc.Metrics().RecordEventsImported(ctx, instrumentation.StatusError, 1)
		return failed(fmt.Sprintf("import events (%d imported before the failure)", len(imported)), err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Imported %d events from %s.", len(imported), path)), nil
}
