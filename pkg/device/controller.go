package device

import "context"

// Controller is the operation set the API and MCP layers drive.
// The hub client implements it; NullController stands in when the hub
// is unreachable.
type Controller interface {
	// SwitchLight turns the fixture with the given hub device id on or off
	SwitchLight(ctx context.Context, deviceID uint16, enable bool) error

	// GetRoomLights returns every light fixture in a room
	GetRoomLights(ctx context.Context, roomID uint16) ([]Light, error)

	// GetACInfo returns the reported AC state of a room
	GetACInfo(ctx context.Context, roomID uint16) (ACData, error)

	// SetACInfoRoom12 applies the non-nil fields of target to the AC in
	// DefaultRoom and returns the resulting state
	SetACInfoRoom12(ctx context.Context, target ACData) (ACData, error)

	// Reconnect re-authenticates and replaces the hub session
	Reconnect(ctx context.Context) error

	// IsConnected returns true if the controller holds a live session
	IsConnected() bool

	// Close disconnects the controller
	Close()
}
