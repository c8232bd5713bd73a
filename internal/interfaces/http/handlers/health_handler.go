package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turtacn/apiecho/pkg/constants"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// LivenessCheck godoc
// @Summary      Liveness Check
// @Description  Always reports that the service is running.
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "API is running!"
// @Router       / [get]
// @Router       /health [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.String(http.StatusOK, constants.HealthMessage)
}
