package event_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/server"
	"github.com/teemow/eventmanager/internal/tools/batch"
)

func registerLifecycleTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addTool(s, sc, mcp.NewTool("events_create",
		mcp.WithDescription("Create an event and invite its attendees. With onBehalfOf the event is moved to that organizer's calendar."),
		accountParam(),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Meeting type: 'Official Meeting', 'Online Meeting' or 'Physical Event'"),
		),
		mcp.WithString("startDate", mcp.Required(), mcp.Description("Start date as YYYY-MM-DD or DD-Mon-YYYY")),
		mcp.WithString("startTime", mcp.Required(), mcp.Description("Start time as 'HH:MM' (24h) or 'H:MM AM/PM'")),
		mcp.WithString("endDate", mcp.Required(), mcp.Description("End date as YYYY-MM-DD or DD-Mon-YYYY")),
		mcp.WithString("endTime", mcp.Required(), mcp.Description("End time as 'HH:MM' (24h) or 'H:MM AM/PM'")),
		mcp.WithString("address", mcp.Required(), mcp.Description("Street number and street name")),
		mcp.WithString("status", mcp.Description("Event status (default: confirmed)")),
		mcp.WithString("attendees",
			mcp.Description(fmt.Sprintf("Up to %d attendees as 'Name <email>' with an optional ';comment', comma separated or as an array", events.MaxAttendees)),
		),
		mcp.WithString("onBehalfOf", mcp.Description("Email of the organizer who should own the event")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreate(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_update_title",
		mcp.WithDescription("Rename an event and notify its attendees"),
		accountParam(),
		eventIDParam(),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateTitle(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_update_dates",
		mcp.WithDescription("Move an event to new all-day dates and notify its attendees"),
		accountParam(),
		eventIDParam(),
		mcp.WithString("startDate", mcp.Required(), mcp.Description("New start date as YYYY-MM-DD or DD-Mon-YYYY")),
		mcp.WithString("endDate", mcp.Required(), mcp.Description("New end date as YYYY-MM-DD or DD-Mon-YYYY")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateDates(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_change_organizer",
		mcp.WithDescription("Transfer an event to another organizer's calendar"),
		accountParam(),
		eventIDParam(),
		mcp.WithString("organizer", mcp.Required(), mcp.Description("Email of the new organizer")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleChangeOrganizer(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_cancel",
		mcp.WithDescription("Mark one or more events as cancelled without notifying attendees"),
		accountParam(),
		mcp.WithString("eventIds",
			mcp.Required(),
			mcp.Description("Event ID, comma separated IDs or an array of IDs"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCancel(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("events_delete_past",
		mcp.WithDescription("Delete one or more events whose end time has passed"),
		accountParam(),
		mcp.WithString("eventIds",
			mcp.Required(),
			mcp.Description("Event ID, comma separated IDs or an array of IDs"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeletePast(ctx, request, sc)
	})
}

// clockArg accepts "HH:MM" verbatim and converts "H:MM AM" or "H:MM PM".
func clockArg(value string) (string, error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return value, nil
	}
	hour, minute, ok := strings.Cut(fields[0], ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", events.ErrInvalidTime, value)
	}
	return events.ClockTime(hour, minute, strings.ToUpper(fields[1]))
}

func draftFromArgs(args map[string]interface{}) (events.Draft, error) {
	d := events.Draft{
		Title:       stringArg(args, "title"),
		MeetingType: stringArg(args, "type"),
		StartDate:   stringArg(args, "startDate"),
		EndDate:     stringArg(args, "endDate"),
		Address:     stringArg(args, "address"),
		Status:      stringArg(args, "status"),
	}
	if d.Status == "" {
		d.Status = events.StatusConfirmed
	}

	var err error
	if d.StartTime, err = clockArg(stringArg(args, "startTime")); err != nil {
		return d, err
	}
	if d.EndTime, err = clockArg(stringArg(args, "endTime")); err != nil {
		return d, err
	}

	if raw, ok := args["attendees"]; ok && raw != nil && raw != "" {
		items, err := batch.ParseStringOrArray(raw, "attendees")
		if err != nil {
			return d, err
		}
		for _, item := range items {
			a, err := events.ParseAttendee(item)
			if err != nil {
				return d, err
			}
			d.Attendees = append(d.Attendees, a)
		}
	}
	return d, nil
}

func handleCreate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	for _, key := range []string{"title", "type", "startDate", "startTime", "endDate", "endTime", "address"} {
		if _, res := requireString(args, key); res != nil {
			return res, nil
		}
	}

	draft, err := draftFromArgs(args)
	if err != nil {
		return failed("create event", err), nil
	}
	e, err := events.New(draft)
	if err != nil {
		return failed("create event", err), nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var rec *events.Record
	if organizer := stringArg(args, "onBehalfOf"); organizer != "" {
		rec, err = m.CreateOnBehalf(ctx, e, organizer)
	} else {
		rec, err = m.Insert(ctx, e)
	}
	if err != nil {
		return failed("create event", err), nil
	}
	return mcp.NewToolResultText("Event created:\n" + formatRecord(rec)), nil
}

func handleUpdateTitle(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	title, res := requireString(args, "title")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := m.UpdateTitle(ctx, eventID, title)
	if err != nil {
		return failed("update title", err), nil
	}
	return mcp.NewToolResultText("Event updated:\n" + formatRecord(rec)), nil
}

func handleUpdateDates(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	start, res := requireString(args, "startDate")
	if res != nil {
		return res, nil
	}
	end, res := requireString(args, "endDate")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := m.UpdateDates(ctx, eventID, start, end)
	if err != nil {
		return failed("update dates", err), nil
	}
	if rec == nil {
		return mcp.NewToolResultText("No changes made: dates must be YYYY-MM-DD or DD-Mon-YYYY."), nil
	}
	return mcp.NewToolResultText("Event updated:\n" + formatRecord(rec)), nil
}

func handleChangeOrganizer(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	organizer, res := requireString(args, "organizer")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := m.ChangeOrganizer(ctx, eventID, organizer)
	if err != nil {
		return failed("change organizer", err), nil
	}
	return mcp.NewToolResultText("Event moved:\n" + formatRecord(rec)), nil
}

func handleCancel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return runBatch(ctx, request, sc, "eventIds", func(ctx context.Context, m *events.Manager, id string) (string, error) {
		rec, err := m.Cancel(ctx, id)
		if err != nil {
			return "", err
		}
		return "status " + rec.Status, nil
	})
}

func handleDeletePast(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return runBatch(ctx, request, sc, "eventIds", func(ctx context.Context, m *events.Manager, id string) (string, error) {
		if err := m.DeletePast(ctx, id); err != nil {
			return "", err
		}
		return "deleted", nil
	})
}

// runBatch applies fn to every item of the key argument and reports the
// per-item results. The result is an error result only when all items fail.
func runBatch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, key string,
	fn func(ctx context.Context, m *events.Manager, item string) (string, error)) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	items, err := batch.ParseStringOrArray(args[key], key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.Process(ctx, items, func(ctx context.Context, item string) (string, error) {
		return fn(ctx, m, item)
	})
	if summary := batch.Summarize(results); summary.Successful == 0 {
		return mcp.NewToolResultError(batch.FormatResults(results)), nil
	}
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
