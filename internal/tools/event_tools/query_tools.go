package event_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/server"
)

func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addTool(s, sc, mcp.NewTool("events_list_upcoming",
		mcp.WithDescription("List the next events starting at or after a given time, earliest first"),
		accountParam(),
		mcp.WithString("from",
			mcp.Description("Lower bound as an ISO timestamp, e.g. '2025-01-01T00:00:00Z' (default: now)"),
		),
		mcp.WithNumber("count",
			mcp.Description(fmt.Sprintf("Maximum number of events, at least 1 (default: %d)", events.DefaultUpcoming)),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListUpcoming(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_view",
		mcp.WithDescription("List events from five years ago to five years ahead"),
		accountParam(),
		mcp.WithBoolean("all",
			mcp.Description("List every event on the calendar instead"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleView(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_search",
		mcp.WithDescription("Search events by substring of title, meeting type, address and date parts. Empty criteria match every timed event."),
		accountParam(),
		mcp.WithString("title", mcp.Description("Substring of the event title")),
		mcp.WithString("type", mcp.Description("Substring of the meeting type, e.g. 'Online'")),
		mcp.WithString("address", mcp.Description("Substring of the event address")),
		mcp.WithString("year", mcp.Description("Substring of the YYYY part of start or end")),
		mcp.WithString("month", mcp.Description("Substring of the MM part of start or end")),
		mcp.WithString("day", mcp.Description("Substring of the DD part of start or end")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearch(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("attendees_list",
		mcp.WithDescription("List the first N attendee emails of an event"),
		accountParam(),
		eventIDParam(),
		mcp.WithNumber("count",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Number of attendees to return, 0 to %d", events.MaxAttendees)),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListAttendees(ctx, request, sc)
	})
}

func handleListUpcoming(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	count, ok, err := intArg(args, "count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		count = events.DefaultUpcoming
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := m.ListUpcoming(ctx, stringArg(args, "from"), count)
	if err != nil {
		return failed("list upcoming events", err), nil
	}
	return mcp.NewToolResultText(formatRecords(records)), nil
}

func handleView(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var records []*events.Record
	if all, _ := args["all"].(bool); all {
		records, err = m.ListAll(ctx)
	} else {
		records, err = m.ViewWindow(ctx)
	}
	if err != nil {
		return failed("list events", err), nil
	}
	return mcp.NewToolResultText(formatRecords(records)), nil
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := m.Search(ctx, filterFromArgs(args))
	if err != nil {
		return failed("search events", err), nil
	}
	return mcp.NewToolResultText(formatRecords(records)), nil
}

func filterFromArgs(args map[string]interface{}) events.Filter {
	return events.Filter{
		Title:   stringArg(args, "title"),
		Type:    stringArg(args, "type"),
		Address: stringArg(args, "address"),
		Year:    stringArg(args, "year"),
		Month:   stringArg(args, "month"),
		Day:     stringArg(args, "day"),
	}
}

func handleListAttendees(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	count, ok, err := intArg(args, "count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("count is required"), nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	emails, err := m.GetAttendees(ctx, eventID, count)
	if err != nil {
		return failed("list attendees", err), nil
	}
	if len(emails) == 0 {
		return mcp.NewToolResultText("No attendees."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Attendees (%d):\n%s", len(emails), strings.Join(emails, "\n"))), nil
}
