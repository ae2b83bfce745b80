package interra

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// acStepPacing is the pause the AC unit needs after each actuation; faster
// commands are dropped.
const acStepPacing = 300 * time.Millisecond

// SwitchLight turns the fixture with the given hub device id on or off.
func (c *Client) SwitchLight(ctx context.Context, deviceID uint16, enable bool) error {
	if err := c.Send(ctx, switchLightCommand(deviceID, enable)); err != nil {
		return err
	}

	light := device.LightIDFromDevice(deviceID)
	c.metrics.LightActive.WithLabelValues(string(light)).Set(boolGauge(enable))
	log.Info().Uint16("device_id", deviceID).Str("light", string(light)).Bool("active", enable).Msg("Light switched")
	return nil
}

// GetRoomLights returns the lights of a room.
func (c *Client) GetRoomLights(ctx context.Context, roomID uint16) ([]device.Light, error) {
	data, err := c.RequestRead(ctx, queryCommand(roomID, ObjectLights))
	if err != nil {
		return nil, err
	}

	lights, err := decodeLights(data)
	if err != nil {
		return nil, err
	}
	for _, l := range lights {
		c.metrics.LightActive.WithLabelValues(string(l.ID)).Set(boolGauge(l.Active))
	}
	return lights, nil
}

// GetACInfo returns the reported AC state of a room.
func (c *Client) GetACInfo(ctx context.Context, roomID uint16) (device.ACData, error) {
	data, err := c.RequestRead(ctx, queryCommand(roomID, ObjectAC))
	if err != nil {
		return device.ACData{}, err
	}

	records, err := decodeACData(data)
	if err != nil {
		return device.ACData{}, err
	}

	ac := foldACData(records)
	if ac.RoomTemp != nil {
		c.metrics.RoomTemperature.Set(*ac.RoomTemp)
	}
	if ac.SetTemp != nil {
		c.metrics.SetTemperature.Set(float64(*ac.SetTemp))
	}
	return ac, nil
}

// SetACInfoRoom12 moves the AC in device.DefaultRoom towards target. The
// hub has no absolute set-temperature command, so the temperature is stepped
// one degree per command. The result is the pre-change state with the
// targeted fields replaced; it is not re-read from the hub. If a command
// fails the sequence stops and the error is returned.
func (c *Client) SetACInfoRoom12(ctx context.Context, target device.ACData) (device.ACData, error) {
	c.acMu.Lock()
	defer c.acMu.Unlock()

	baseline, err := c.GetACInfo(ctx, device.DefaultRoom)
	if err != nil {
		return device.ACData{}, fmt.Errorf("read ac baseline: %w", err)
	}
	if target.SetTemp != nil && baseline.SetTemp == nil {
		log.Warn().Int("target", *target.SetTemp).Msg("Hub did not report a set temperature, skipping temperature change")
	}

	steps, err := planACSteps(baseline, target)
	if err != nil {
		return device.ACData{}, err
	}

	for i, actuator := range steps {
		if err := c.Send(ctx, acCommand(actuator)); err != nil {
			return device.ACData{}, fmt.Errorf("ac command %d of %d (actuator %d): %w", i+1, len(steps), actuator, err)
		}
		log.Debug().Int("step", i+1).Int("of", len(steps)).Int("actuator", actuator).Msg("AC command sent")

		if err := c.pace(ctx, acStepPacing); err != nil {
			return device.ACData{}, fmt.Errorf("ac command %d of %d: %w", i+1, len(steps), err)
		}
	}

	result := applyACTarget(baseline, target)
	if result.SetTemp != nil {
		c.metrics.SetTemperature.Set(float64(*result.SetTemp))
	}
	log.Info().Int("commands", len(steps)).Msg("AC updated")
	return result, nil
}
