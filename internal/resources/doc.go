// Package resources provides MCP resources exposing calendar data.
// Resources are read-only data sources that MCP clients can fetch without
// calling a tool: the upcoming events as JSON or iCalendar and the status of
// the configured account.
package resources
