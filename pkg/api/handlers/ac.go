package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/schema"
)

// ACHandler handles air conditioner endpoints
type ACHandler struct {
	controller device.Controller
	validator  *schema.Validator
}

// NewACHandler creates a new AC handler
func NewACHandler(controller device.Controller, validator *schema.Validator) *ACHandler {
	return &ACHandler{controller: controller, validator: validator}
}

// GetAC handles GET /ac
// @Summary      Get AC state
// @Description  Returns room temperature, set temperature, fan speed and power of the AC
// @Tags         ac
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.ACResponse
// @Failure      401  {object}  types.ErrorResponse  "Bad token"
// @Failure      502  {object}  types.ErrorResponse  "Hub sent garbage"
// @Failure      504  {object}  types.ErrorResponse  "Hub timed out"
// @Router       /ac [get]
func (h *ACHandler) GetAC(c *gin.Context) {
	data, err := h.controller.GetACInfo(c.Request.Context(), device.DefaultRoom)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// SetAC handles PATCH /ac
// @Summary      Set AC state
// @Description  Applies the non-null fields to the AC. The set temperature is stepped one degree at a time.
// @Tags         ac
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      types.ACStateRequest  true  "Target state"
// @Success      200      {object}  types.ACResponse
// @Failure      400      {object}  types.ErrorResponse  "Out of range or bad body"
// @Failure      401      {object}  types.ErrorResponse  "Bad token"
// @Failure      504      {object}  types.ErrorResponse  "Hub timed out"
// @Router       /ac [patch]
func (h *ACHandler) SetAC(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, msgBadJSON)
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		badRequest(c, msgBadJSON)
		return
	}
	if t, ok := payload["setTemp"].(float64); ok {
		switch {
		case t > device.MaxSetTemp:
			badRequest(c, msgMaxTemp)
			return
		case t < device.MinSetTemp:
			badRequest(c, msgMinTemp)
			return
		}
	}
	if err := h.validator.ValidateACTarget(payload); err != nil {
		respondError(c, err)
		return
	}

	var target device.ACData
	if err := json.Unmarshal(body, &target); err != nil {
		badRequest(c, msgBadJSON)
		return
	}

	data, err := h.controller.SetACInfoRoom12(c.Request.Context(), target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
