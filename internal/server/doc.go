// Package server provides the shared state behind the MCP server and the
// HTTP endpoints that run next to it.
//
// ServerContext lazily creates one events.Manager per Google account and
// caches it. Managers talk to Google Calendar through calendar.Client with
// the configured calendar ID and rate limit.
//
// MetricsServer exposes Prometheus metrics on /metrics together with the
// HealthChecker endpoints /healthz and /readyz on a dedicated address.
package server
