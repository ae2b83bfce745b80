package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IAmThe2ndHuman/interra-api/pkg/api/types"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	controller device.Controller
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller device.Controller) *HealthHandler {
	return &HealthHandler{controller: controller}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Reports whether the hub session is live
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Hub connected"
// @Failure      503  {object}  types.HealthResponse  "Hub unreachable"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := types.HealthResponse{
		Status:     "healthy",
		Controller: "connected",
		Timestamp:  time.Now(),
	}
	httpStatus := http.StatusOK

	if !h.controller.IsConnected() {
		resp.Status = "degraded"
		resp.Controller = "disconnected"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, resp)
}
