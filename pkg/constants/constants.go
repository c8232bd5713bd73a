// Package constants defines system-wide constants for the apiecho service.
package constants

import "time"

// ================================================================================
// Service Tier Constants
// ================================================================================

// Tier selects how the /api endpoint handles and instruments a request.
type Tier int

const (
	// TierEcho echoes the raw request and only counts it
	TierEcho Tier = 1

	// TierInstrumented echoes the raw request and records latency, size and in-flight metrics
	TierInstrumented Tier = 2

	// TierStructured parses the body as a JSON object and reports payload errors as 400
	TierStructured Tier = 3
)

// DefaultTier is the tier used when none is configured
const DefaultTier = TierStructured

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t >= TierEcho && t <= TierStructured
}

// Instrumented reports whether the tier records latency, size and in-flight metrics.
func (t Tier) Instrumented() bool {
	return t >= TierInstrumented
}

// ================================================================================
// HTTP Surface Constants
// ================================================================================

const (
	// EndpointAPI is the introspection endpoint and the value of the endpoint metric label
	EndpointAPI = "/api"

	// EndpointMetrics exposes the metric snapshot
	EndpointMetrics = "/metrics"

	// EndpointRoot is the liveness endpoint
	EndpointRoot = "/"

	// EndpointHealth is an alias of EndpointRoot for probes configured with a health path
	EndpointHealth = "/health"

	// HealthMessage is the fixed liveness response body
	HealthMessage = "API is running!"

	// MetricsContentType is the content type of the metrics exposition
	MetricsContentType = "text/plain; version=0.0.4; charset=utf-8"

	// TextContentType is the content type of /api responses
	TextContentType = "text/plain; charset=utf-8"

	// HeaderRequestID carries the request id in and out of the service
	HeaderRequestID = "X-Request-ID"
)

// ================================================================================
// Structured Payload Constants
// ================================================================================

const (
	// FieldUsername is the username key of a structured payload
	FieldUsername = "username"

	// FieldPassword is the password key of a structured payload
	FieldPassword = "password"

	// NotAvailable replaces structured payload fields that are absent
	NotAvailable = "N/A"
)

// ================================================================================
// Server Defaults
// ================================================================================

const (
	// DefaultPort is the listen port when PORT is not set
	DefaultPort = 5000

	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second

	// ServiceName identifies the service in logs and traces
	ServiceName = "apiecho"
)

// ================================================================================
// Logging Constants
// ================================================================================

// LogLevel represents the logging severity level
type LogLevel string

const (
	// LogLevelDebug is the most verbose logging level
	LogLevelDebug LogLevel = "debug"

	// LogLevelInfo is the standard informational logging level
	LogLevelInfo LogLevel = "info"

	// LogLevelWarn indicates potential issues
	LogLevelWarn LogLevel = "warn"

	// LogLevelError indicates errors that need attention
	LogLevelError LogLevel = "error"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey represents keys used in context.Context
type ContextKey string

const (
	// ContextKeyRequestID is the key for request ID in context
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID is the key for distributed trace ID in context
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyLogger is the key for a request-scoped logger in context
	ContextKeyLogger ContextKey = "logger"
)
