// Package instrumentation provides OpenTelemetry metrics and tracing for
// eventmanager.
//
// # Metrics
//
//   - google_api_operations_total: Google Calendar calls by operation and status
//   - google_api_operation_duration_seconds: Google Calendar call durations
//   - calendar_rate_limit_wait_seconds: time spent in the client side rate limiter
//   - events_imported_total: events imported from JSON files
//   - mcp_tool_invocations_total: MCP tool invocations by tool and status
//   - mcp_tool_duration_seconds: MCP tool durations
//
// # Configuration
//
// DefaultConfig reads the environment:
//
//	INSTRUMENTATION_ENABLED      true|false (default true)
//	METRICS_EXPORTER             prometheus|otlp|stdout (default prometheus)
//	TRACING_EXPORTER             otlp|stdout|none (default none)
//	OTEL_EXPORTER_OTLP_ENDPOINT  collector address
//	OTEL_TRACES_SAMPLER_ARG      sampling rate 0.0..1.0 (default 0.1)
//	METRICS_DETAILED_LABELS      add the account label to tool metrics
//
// Prometheus metrics are served by internal/server.MetricsServer.
package instrumentation
