package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/api/types"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// SystemHandler handles hub session management
type SystemHandler struct {
	controller device.Controller
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(controller device.Controller) *SystemHandler {
	return &SystemHandler{controller: controller}
}

// Restart handles GET /restart
// @Summary      Restart hub session
// @Description  Drops the hub connection and logs in again
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.MessageResponse
// @Failure      401  {object}  types.ErrorResponse  "Bad token"
// @Failure      500  {object}  types.ErrorResponse  "Reconnect failed"
// @Failure      504  {object}  types.ErrorResponse  "Hub timed out"
// @Router       /restart [get]
func (h *SystemHandler) Restart(c *gin.Context) {
	if err := h.controller.Reconnect(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	log.Info().Msg("Hub session restarted")
	c.JSON(http.StatusOK, types.MessageResponse{Message: "restarted!"})
}
