package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turtacn/apiecho/internal/infrastructure/monitoring"
	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/logger"
)

// MetricsHandler exposes the metric registry for Prometheus scraping.
type MetricsHandler struct {
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metrics *monitoring.Metrics, log logger.Logger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, log: log}
}

// Metrics handles GET /metrics. The response is a snapshot taken at call time.
func (h *MetricsHandler) Metrics(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.metrics.Render(&buf); err != nil {
		ctx := c.Request.Context()
		h.log.ForContext(ctx).Error(ctx, "Failed to render metrics", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, constants.MetricsContentType, buf.Bytes())
}
