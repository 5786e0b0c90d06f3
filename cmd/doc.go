// Package cmd implements the command-line interface for eventmanager.
//
// This package provides the following commands:
//   - list, view, search: Show events on the calendar
//   - create, title, dates, organizer, cancel, delete: Manage events
//   - attendees: List, invite, remove and update guests and record their responses
//   - import, export: Move events between the calendar and JSON or iCalendar files
//   - auth: Authorize a Google account
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The list command is the default command when no subcommand is specified.
package cmd
