// Package common provides helpers shared by the MCP tool packages: account
// selection and the instrumentation wrapper every tool handler runs behind.
package common
