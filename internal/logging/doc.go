// Package logging provides structured logging utilities for eventmanager.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "events.cancel")
//	logger.Info("event cancelled",
//	    logging.EventID(id),
//	    logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("attendee added",
//	    logging.UserHash(email))
//
// # Security Considerations
//
// Attendee and organizer emails are hashed to prevent PII leakage while
// allowing correlation. Tokens are never logged directly.
package logging
