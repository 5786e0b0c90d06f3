package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/ical"
	"github.com/teemow/eventmanager/internal/server"
)

// Resource URIs.
const (
	UpcomingURI    = "events://upcoming"
	UpcomingICSURI = "events://upcoming.ics"
	AccountURI     = "account://status"
)

const (
	mimeJSON     = "application/json"
	mimeCalendar = "text/calendar"
)

// AccountStatus describes the configured account.
type AccountStatus struct {
	Account       string `json:"account"`
	CalendarID    string `json:"calendarId"`
	Authenticated bool   `json:"authenticated"`
}

// RegisterEventResources registers the calendar resources with the MCP server.
func RegisterEventResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	s.AddResource(mcp.NewResource(UpcomingURI,
		"Upcoming Events",
		mcp.WithResourceDescription(fmt.Sprintf("The next %d events of the configured account as JSON", events.DefaultUpcoming)),
		mcp.WithMIMEType(mimeJSON),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUpcoming(ctx, request, sc)
	})

	s.AddResource(mcp.NewResource(UpcomingICSURI,
		"Upcoming Events (iCalendar)",
		mcp.WithResourceDescription(fmt.Sprintf("The next %d events of the configured account as an iCalendar file", events.DefaultUpcoming)),
		mcp.WithMIMEType(mimeCalendar),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUpcomingICS(ctx, request, sc)
	})

	s.AddResource(mcp.NewResource(AccountURI,
		"Account Status",
		mcp.WithResourceDescription("The configured Google account, its calendar and whether it is authorized"),
		mcp.WithMIMEType(mimeJSON),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAccountStatus(ctx, request, sc)
	})

	return nil
}

func upcoming(ctx context.Context, sc *server.ServerContext) ([]*events.Record, error) {
	m, err := sc.Manager()
	if err != nil {
		return nil, err
	}
	records, err := m.Upcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return records, nil
}

func handleUpcoming(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	records, err := upcoming(ctx, sc)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return textContents(request.Params.URI, mimeJSON, "[]\n"), nil
	}

	var buf bytes.Buffer
	if err := events.EncodeRecords(&buf, records); err != nil {
		return nil, err
	}
	return textContents(request.Params.URI, mimeJSON, buf.String()), nil
}

func handleUpcomingICS(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	records, err := upcoming(ctx, sc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ical.Encode(&buf, records, time.Now()); err != nil {
		return nil, err
	}
	return textContents(request.Params.URI, mimeCalendar, buf.String()), nil
}

func handleAccountStatus(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	account := sc.DefaultAccount()
	status := AccountStatus{
		Account:       account,
		CalendarID:    sc.Config().CalendarID,
		Authenticated: sc.HasToken(account),
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account status: %w", err)
	}
	return textContents(request.Params.URI, mimeJSON, string(data)), nil
}

func textContents(uri, mimeType, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		},
	}
}
