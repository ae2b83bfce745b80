package device

import "context"

// NullController is a no-op controller used when the hub is unreachable at
// startup. It allows the API to run in degraded mode.
type NullController struct{}

// NewNullController creates a new NullController.
func NewNullController() *NullController {
	return &NullController{}
}

func (c *NullController) SwitchLight(ctx context.Context, deviceID uint16, enable bool) error {
	return ErrNotConnected
}

func (c *NullController) GetRoomLights(ctx context.Context, roomID uint16) ([]Light, error) {
	return nil, ErrNotConnected
}

func (c *NullController) GetACInfo(ctx context.Context, roomID uint16) (ACData, error) {
	return ACData{}, ErrNotConnected
}

func (c *NullController) SetACInfoRoom12(ctx context.Context, target ACData) (ACData, error) {
	return ACData{}, ErrNotConnected
}

func (c *NullController) Reconnect(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullController) IsConnected() bool {
	return false
}

func (c *NullController) Close() {}
