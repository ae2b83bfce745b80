// Package devicetest provides an in-memory device.Controller for handler tests.
package devicetest

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// Controller is a scripted device.Controller. Set Err to make every hub
// operation fail with it.
type Controller struct {
	mu sync.Mutex

	Connected bool
	Lights    []device.Light
	AC        device.ACData
	Err       error

	Switched   map[uint16]bool
	ACTargets  []device.ACData
	Reconnects int
}

var _ device.Controller = (*Controller)(nil)

// New returns a connected controller with both fixtures and a running AC.
func New() *Controller {
	return &Controller{
		Connected: true,
		Lights: []device.Light{
			{ID: device.LightCeiling, Active: true},
			{ID: device.LightShelf, Active: false},
		},
		AC: device.ACData{
			RoomTemp: lo.ToPtr(23.5),
			SetTemp:  lo.ToPtr(22),
			FanSpeed: lo.ToPtr(device.FanSlow),
			Active:   lo.ToPtr(true),
		},
		Switched: make(map[uint16]bool),
	}
}

func (c *Controller) SwitchLight(_ context.Context, deviceID uint16, enable bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Switched[deviceID] = enable
	return nil
}

func (c *Controller) GetRoomLights(context.Context, uint16) ([]device.Light, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Lights, nil
}

func (c *Controller) GetACInfo(context.Context, uint16) (device.ACData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return device.ACData{}, c.Err
	}
	return c.AC, nil
}

// SetACInfoRoom12 records target and echoes it back.
func (c *Controller) SetACInfoRoom12(_ context.Context, target device.ACData) (device.ACData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return device.ACData{}, c.Err
	}
	c.ACTargets = append(c.ACTargets, target)
	return target, nil
}

func (c *Controller) Reconnect(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Reconnects++
	return c.Err
}

func (c *Controller) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Connected
}

func (c *Controller) Close() {}
