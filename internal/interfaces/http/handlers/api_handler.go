package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/turtacn/apiecho/internal/infrastructure/monitoring"
	"github.com/turtacn/apiecho/internal/introspect"
	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/errors"
	"github.com/turtacn/apiecho/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
)

// APIHandler serves /api: it echoes the request back and records its traffic metrics.
type APIHandler struct {
	metrics *monitoring.Metrics
	tier    constants.Tier
	log     logger.Logger
}

// NewAPIHandler creates a new APIHandler for the given tier.
func NewAPIHandler(metrics *monitoring.Metrics, tier constants.Tier, log logger.Logger) *APIHandler {
	return &APIHandler{
		metrics: metrics,
		tier:    tier,
		log:     log,
	}
}

// Tier returns the tier the handler runs at.
func (h *APIHandler) Tier() constants.Tier {
	return h.tier
}

// Handle godoc
// @Summary      Echo request details
// @Description  Returns the headers, method and body of the request.
// @Tags         api
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string
// @Failure      400  {string}  string
// @Router       /api [get]
// @Router       /api [post]
// @Router       /api [put]
// @Router       /api [delete]
func (h *APIHandler) Handle(c *gin.Context) {
	if !h.tier.Instrumented() {
		text, status, _ := h.process(c)
		h.metrics.CountRequest(c.Request.Method, constants.EndpointAPI, status)
		c.Data(status, constants.TextContentType, []byte(text))
		return
	}

	done := h.metrics.TrackInProgress()
	defer done()

	text, status := h.observe(c)
	c.Data(status, constants.TextContentType, []byte(text))
}

// observe runs process inside the latency window. The deferred recording also
// covers a panic, which is accounted as a 500 before it propagates.
func (h *APIHandler) observe(c *gin.Context) (text string, status int) {
	start := time.Now()
	status = http.StatusInternalServerError
	size := 0
	defer func() {
		h.metrics.ObserveRequest(c.Request.Method, constants.EndpointAPI, status, time.Since(start), size)
	}()

	text, status, size = h.process(c)
	return text, status
}

// process consumes the body and builds the response. It returns the body size
// alongside the text and status.
func (h *APIHandler) process(c *gin.Context) (string, int, int) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	monitoring.SetSpanAttributes(ctx,
		attribute.Int("apiecho.tier", int(h.tier)),
		attribute.Int("apiecho.body_bytes", len(body)),
	)
	if err != nil {
		readErr := errors.ErrBodyRead("Failed to read request body").WithCause(err)
		h.log.ForContext(ctx).Warn(ctx, "Request body read failed", logger.Fields{
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		monitoring.RecordError(ctx, readErr)
		return introspect.RenderPayloadError(readErr), readErr.HTTPStatus(), len(body)
	}

	view := introspect.FromRequest(c.Request, body)
	if h.tier != constants.TierStructured {
		return introspect.RenderEcho(view), http.StatusOK, view.Size()
	}
	text, status := h.structured(ctx, view)
	return text, status, view.Size()
}

func (h *APIHandler) structured(ctx context.Context, view *introspect.RequestView) (string, int) {
	creds, err := introspect.ParseCredentials(view.Body)
	if err != nil {
		h.log.ForContext(ctx).Debug(ctx, "Payload rejected", logger.Fields{
			"method":     view.Method,
			"body_bytes": view.Size(),
			"error":      err.Error(),
		})
		monitoring.RecordError(ctx, err)
		return introspect.RenderPayloadError(err), errors.HTTPStatusOf(err)
	}
	return introspect.RenderCredentials(view, creds), http.StatusOK
}
