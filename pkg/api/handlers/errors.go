package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/api/types"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// Messages returned to API clients for rejected input.
const (
	msgNotARealID   = "this is NOT a real ID"
	msgUnknownLight = "blud really thought bro could jus put any ol id here 💀💀💀 i only accept ceilingLights n shelfLight u ok or what"
	msgBadJSON      = "terrible json. I am sorry"
	msgMaxTemp      = "sorry, 25 is the max temp!"
	msgMinTemp      = "sorry, 20 is the min temp!"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

// respondError maps a controller error onto an HTTP status.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "controller_error"
	switch {
	case errors.Is(err, device.ErrValidation):
		status, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, device.ErrUnknownDevice):
		status, code = http.StatusBadRequest, "unknown_device"
	case errors.Is(err, device.ErrTimeout):
		status, code = http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, device.ErrNotConnected):
		status, code = http.StatusServiceUnavailable, "not_connected"
	case errors.Is(err, device.ErrMalformedResponse):
		status, code = http.StatusBadGateway, "bad_hub_response"
	case errors.Is(err, device.ErrTransport):
		code = "transport_error"
	case errors.Is(err, device.ErrConfiguration):
		code = "configuration_error"
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Controller request failed")
	}
	c.JSON(status, types.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
