// Package event_tools exposes event management as MCP tools.
//
// Every tool resolves an events.Manager for the requested account through
// the server context and runs behind common.InstrumentedToolHandler.
// Validation failures come back as tool error results, not protocol errors.
// Write tools are skipped in read-only mode.
package event_tools
