package event_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/server"
)

func registerRosterTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addTool(s, sc, mcp.NewTool("attendees_add",
		mcp.WithDescription("Invite a guest to an event. The guest starts with response 'needsAction'."),
		accountParam(),
		eventIDParam(),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email of the guest")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name of the guest")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAddAttendee(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("attendees_remove",
		mcp.WithDescription("Remove one or more guests from an event"),
		accountParam(),
		eventIDParam(),
		mcp.WithString("emails",
			mcp.Required(),
			mcp.Description("Email, comma separated emails or an array of emails"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemoveAttendees(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("attendees_update",
		mcp.WithDescription("Replace a guest's email. Other roster details of all guests are dropped."),
		accountParam(),
		eventIDParam(),
		mcp.WithString("oldEmail", mcp.Required(), mcp.Description("Current email of the guest")),
		mcp.WithString("newEmail", mcp.Required(), mcp.Description("Replacement email")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateAttendee(ctx, request, sc)
	})

	addTool(s, sc, mcp.NewTool("attendees_respond",
		mcp.WithDescription("Record a guest's response to an invitation"),
		accountParam(),
		eventIDParam(),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email of the responding guest")),
		mcp.WithString("response",
			mcp.Required(),
			mcp.Enum(events.ResponseAccepted, events.ResponseDeclined, events.ResponseTentative),
			mcp.Description("One of accepted, declined, tentative"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRespond(ctx, request, sc)
	})
}

func handleAddAttendee(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	email, res := requireString(args, "email")
	if res != nil {
		return res, nil
	}
	name, res := requireString(args, "name")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := m.AddAttendee(ctx, eventID, email, name)
	if err != nil {
		return failed("add attendee", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Invited %s.\n%s", email, formatRecord(rec))), nil
}

func handleRemoveAttendees(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	eventID, res := requireString(request.GetArguments(), "eventId")
	if res != nil {
		return res, nil
	}
	return runBatch(ctx, request, sc, "emails", func(ctx context.Context, m *events.Manager, email string) (string, error) {
		removed, err := m.DeleteAttendee(ctx, eventID, email)
		if err != nil {
			return "", err
		}
		return "removed " + removed, nil
	})
}

func handleUpdateAttendee(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	oldEmail, res := requireString(args, "oldEmail")
	if res != nil {
		return res, nil
	}
	newEmail, res := requireString(args, "newEmail")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := m.UpdateAttendee(ctx, eventID, oldEmail, newEmail)
	if err != nil {
		return failed("update attendee", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Replaced %s with %s.", oldEmail, updated)), nil
}

func handleRespond(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, res := requireString(args, "eventId")
	if res != nil {
		return res, nil
	}
	email, res := requireString(args, "email")
	if res != nil {
		return res, nil
	}
	response, res := requireString(args, "response")
	if res != nil {
		return res, nil
	}

	m, err := getManager(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	recorded, err := m.RespondInvitation(ctx, eventID, email, response)
	if err != nil {
		return failed("record response", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Recorded %s for %s.", recorded, email)), nil
}
