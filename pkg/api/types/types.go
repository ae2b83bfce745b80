package types

import (
	"time"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// --- Request DTOs ---

// LightStateRequest is the request body for PATCH /lights/:id
type LightStateRequest struct {
	Active bool `json:"active"`
}

// ACStateRequest is the request body for PATCH /ac. Omitted or null fields
// are left unchanged.
type ACStateRequest = device.ACData

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse carries a plain status message
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status     string    `json:"status"`
	Controller string    `json:"controller"`
	Timestamp  time.Time `json:"timestamp"`
}

// LightResponse is returned from GET/PATCH /lights/:id
type LightResponse = device.Light

// ACResponse is returned from GET/PATCH /ac
type ACResponse = device.ACData
