package event_tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/server"
	"github.com/teemow/eventmanager/internal/tools/common"
)

// RegisterEventTools registers all event tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if s == nil || sc == nil {
		return fmt.Errorf("mcp server and server context are required")
	}

	registerQueryTools(s, sc)
	registerExportTool(s, sc)

	if readOnly {
		return nil
	}

	registerLifecycleTools(s, sc)
	registerRosterTools(s, sc)
	registerImportTool(s, sc)
	return nil
}

func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	s.AddTool(tool, common.InstrumentedToolHandler(tool.Name, sc, handler))
}

func accountParam() mcp.ToolOption {
	return mcp.WithString("account",
		mcp.Description("Account name (default: configured account). Used to manage multiple Google accounts."),
	)
}

func eventIDParam() mcp.ToolOption {
	return mcp.WithString("eventId",
		mcp.Required(),
		mcp.Description("The 26 character ID of the event"),
	)
}

// getManager returns the event manager for the account named in args.
func getManager(args map[string]interface{}, sc *server.ServerContext) (*events.Manager, error) {
	return sc.ManagerForAccount(common.GetAccountFromArgs(args, sc.DefaultAccount()))
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// intArg reads a JSON number argument. ok is false when it is missing.
func intArg(args map[string]interface{}, key string) (n int, ok bool, err error) {
	v, present := args[key]
	if !present || v == nil {
		return 0, false, nil
	}
	f, isNum := v.(float64)
	if !isNum || f != float64(int(f)) {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	return int(f), true, nil
}

func requireString(args map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	v := stringArg(args, key)
	if v == "" {
		return "", mcp.NewToolResultError(key + " is required")
	}
	return v, nil
}

func failed(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", action, err))
}
