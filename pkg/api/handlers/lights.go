package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/schema"
)

// LightsHandler handles light fixture endpoints
type LightsHandler struct {
	controller device.Controller
	validator  *schema.Validator
}

// NewLightsHandler creates a new lights handler
func NewLightsHandler(controller device.Controller, validator *schema.Validator) *LightsHandler {
	return &LightsHandler{controller: controller, validator: validator}
}

// ListLights handles GET /lights
// @Summary      List lights
// @Description  Returns the on/off state of every light in the room
// @Tags         lights
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   types.LightResponse
// @Failure      401  {object}  types.ErrorResponse  "Bad token"
// @Failure      502  {object}  types.ErrorResponse  "Hub sent garbage"
// @Failure      503  {object}  types.ErrorResponse  "Hub not connected"
// @Failure      504  {object}  types.ErrorResponse  "Hub timed out"
// @Router       /lights [get]
func (h *LightsHandler) ListLights(c *gin.Context) {
	lights, err := h.controller.GetRoomLights(c.Request.Context(), device.DefaultRoom)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lights)
}

// GetLight handles GET /lights/:id
// @Summary      Get light
// @Description  Returns the state of one light by its symbolic id
// @Tags         lights
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Light id"  Enums(ceilingLights, shelfLight)
// @Success      200  {object}  types.LightResponse
// @Failure      400  {object}  types.ErrorResponse  "Unknown light"
// @Failure      401  {object}  types.ErrorResponse  "Bad token"
// @Failure      504  {object}  types.ErrorResponse  "Hub timed out"
// @Router       /lights/{id} [get]
func (h *LightsHandler) GetLight(c *gin.Context) {
	id, err := device.ParseLightID(c.Param("id"))
	if err != nil {
		badRequest(c, msgNotARealID)
		return
	}

	lights, err := h.controller.GetRoomLights(c.Request.Context(), device.DefaultRoom)
	if err != nil {
		respondError(c, err)
		return
	}

	light, ok := lo.Find(lights, func(l device.Light) bool { return l.ID == id })
	if !ok {
		badRequest(c, msgNotARealID)
		return
	}
	c.JSON(http.StatusOK, light)
}

// SwitchLight handles PATCH /lights/:id
// @Summary      Switch light
// @Description  Turns a light on or off
// @Tags         lights
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Light id"  Enums(ceilingLights, shelfLight)
// @Param        request  body      types.LightStateRequest  true  "Desired state"
// @Success      200      {object}  types.LightResponse
// @Failure      400      {object}  types.ErrorResponse  "Unknown light or bad body"
// @Failure      401      {object}  types.ErrorResponse  "Bad token"
// @Failure      504      {object}  types.ErrorResponse  "Hub timed out"
// @Router       /lights/{id} [patch]
func (h *LightsHandler) SwitchLight(c *gin.Context) {
	var payload map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		badRequest(c, msgBadJSON)
		return
	}
	if err := h.validator.ValidateLightState(payload); err != nil {
		badRequest(c, msgBadJSON)
		return
	}
	active := payload["active"].(bool)

	id, err := device.ParseLightID(c.Param("id"))
	if err != nil {
		badRequest(c, msgUnknownLight)
		return
	}
	deviceID, _ := id.DeviceID()

	if err := h.controller.SwitchLight(c.Request.Context(), deviceID, active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device.Light{ID: id, Active: active})
}
