// Package logger defines the structured logging interface used across the apiecho service.
// The concrete zap-backed implementation lives in internal/infrastructure/monitoring.
package logger

import "context"

// Fields is a set of key-value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger defines the interface for structured logging
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Fields)
	Info(ctx context.Context, msg string, fields ...Fields)
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs msg with err attached under the "error" key
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs msg and exits the process
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that adds fields to every entry
	WithFields(fields Fields) Logger

	// ForContext returns the request-scoped logger stored in ctx, or the receiver
	ForContext(ctx context.Context) Logger
}
