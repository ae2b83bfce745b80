package device

import (
	"fmt"
	"strings"
)

// DefaultRoom is the only room the hub installation exposes.
const DefaultRoom uint16 = 12

// Hub device ids of the light fixtures.
const (
	CeilingLightDeviceID uint16 = 13
	ShelfLightDeviceID   uint16 = 146
)

// LightID is the symbolic name of a light fixture.
type LightID string

const (
	LightCeiling LightID = "ceilingLights"
	LightShelf   LightID = "shelfLight"

	// LightUnknown is reported for fixtures the hub knows about but we don't.
	LightUnknown LightID = "unknown"
)

// LightIDFromDevice maps a hub device id to its symbolic name.
// Ids outside the known fixtures map to LightUnknown.
func LightIDFromDevice(deviceID uint16) LightID {
	switch deviceID {
	case CeilingLightDeviceID:
		return LightCeiling
	case ShelfLightDeviceID:
		return LightShelf
	default:
		return LightUnknown
	}
}

// ParseLightID validates a symbolic light name.
func ParseLightID(s string) (LightID, error) {
	id := LightID(s)
	if _, err := id.DeviceID(); err != nil {
		return "", err
	}
	return id, nil
}

// DeviceID returns the hub device id backing the symbolic name.
func (id LightID) DeviceID() (uint16, error) {
	switch id {
	case LightCeiling:
		return CeilingLightDeviceID, nil
	case LightShelf:
		return ShelfLightDeviceID, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDevice, string(id))
	}
}

// Light is the on/off state of one fixture.
type Light struct {
	ID     LightID `json:"id"`
	Active bool    `json:"active"`
}

// FanSpeed is the AC fan setting. It serializes as an integer 0-3.
type FanSpeed int

const (
	FanAuto FanSpeed = iota
	FanSlow
	FanMedium
	FanFast
)

var fanSpeedNames = [...]string{"auto", "slow", "medium", "fast"}

func (f FanSpeed) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FanSpeed(%d)", int(f))
	}
	return fanSpeedNames[f]
}

// Valid reports whether f is one of the four known speeds.
func (f FanSpeed) Valid() bool {
	return f >= FanAuto && f <= FanFast
}

// ParseFanSpeed accepts a speed name ("auto", "slow", "medium", "fast").
func ParseFanSpeed(s string) (FanSpeed, error) {
	for i, name := range fanSpeedNames {
		if strings.EqualFold(s, name) {
			return FanSpeed(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fan speed %q", ErrValidation, s)
}

// ACData is the state of the AC unit. Every field is optional: on reads a nil
// field was not reported, on writes it is left unchanged.
type ACData struct {
	RoomTemp *float64  `json:"roomTemp"`
	SetTemp  *int      `json:"setTemp"`
	FanSpeed *FanSpeed `json:"fanSpeed"`
	Active   *bool     `json:"active"`
}

// Settable set-temperature bounds of the AC unit, in degrees Celsius.
const (
	MinSetTemp = 20
	MaxSetTemp = 25
)
