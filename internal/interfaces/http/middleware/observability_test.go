package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/apiecho/internal/infrastructure/monitoring"
	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingManager(t *testing.T) (*monitoring.TracingManager, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return monitoring.NewTracingManagerWithProvider(tp, logger.NewNoopLogger()), sr
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())

	var seen interface{}
	router.GET("/test", func(c *gin.Context) {
		seen = c.Request.Context().Value(constants.ContextKeyRequestID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	id := w.Header().Get(constants.HeaderRequestID)
	assert.Len(t, id, 36)
	assert.Equal(t, id, seen)
}

func TestRequestIDMiddlewarePropagatesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))
}

func TestTracingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tm, sr := newRecordingManager(t)

	router := gin.New()
	router.Use(TracingMiddleware(tm))
	router.POST("/api", func(c *gin.Context) {
		monitoring.SetSpanAttributes(c.Request.Context(), attribute.Int("apiecho.tier", 3))
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "HTTP POST /api", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(400), attrs["http.status_code"].AsInt64())
	assert.Equal(t, int64(3), attrs["apiecho.tier"].AsInt64())
}

func TestTracingMiddlewareContinuesRemoteTrace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tm, sr := newRecordingManager(t)

	router := gin.New()
	router.Use(TracingMiddleware(tm))
	var traceID interface{}
	router.GET("/", func(c *gin.Context) {
		traceID = c.Request.Context().Value(constants.ContextKeyTraceID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traceID)
}

func TestTracingMiddlewareMarksServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tm, sr := newRecordingManager(t)

	router := gin.New()
	router.Use(TracingMiddleware(tm))
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
