package interra

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// AC attribute and actuator ids
const (
	acActive    = 57
	acOff       = 58
	acRoomTemp  = 60
	acSetTemp   = 62
	acStepDown  = 63
	acStepUp    = 64
	acFanAuto   = 66
	acFanReport = 67
)

// acActionType is the actionType of every AC actuation frame.
const acActionType = 13

// lightRecord is one element of a lights query reply.
type lightRecord struct {
	ID       uint16 `json:"id"`
	IsActive bool   `json:"isActive"`
}

// ACDatum is one attribute record of an AC query reply.
type ACDatum struct {
	ID        int    `json:"id"`
	IsActive  bool   `json:"isActive"`
	ReadValue string `json:"readValue"`
}

// hub fan speed readings, indexed by device.FanSpeed
var fanReadings = [...]string{"00", "01", "02", "03"}

func loginCommand(username, password string) Command {
	return Command{
		Data: Object{
			{Key: "userName", Value: username},
			{Key: "password", Value: password},
		},
		RequestType: RequestLogin,
	}
}

func switchLightCommand(deviceID uint16, enable bool) Command {
	action := "2"
	if enable {
		action = "1"
	}
	return Command{
		Data: Object{
			{Key: "actionType", Value: action},
			{Key: "id", Value: strconv.Itoa(int(deviceID))},
			{Key: "url", Value: nil},
			{Key: "value", Value: "0"},
		},
		RequestType: RequestActuate,
	}
}

func queryCommand(roomID uint16, objectType int) Command {
	return Command{
		Data: Object{
			{Key: "id", Value: strconv.Itoa(int(roomID))},
			{Key: "objectType", Value: strconv.Itoa(objectType)},
		},
		RequestType: RequestQuery,
	}
}

func acCommand(actuator int) Command {
	return Command{
		Data: Object{
			{Key: "actionType", Value: acActionType},
			{Key: "id", Value: strconv.Itoa(actuator)},
			{Key: "url", Value: nil},
			{Key: "value", Value: "0"},
		},
		RequestType: RequestActuate,
	}
}

func decodeLights(data json.RawMessage) ([]device.Light, error) {
	var records []lightRecord
	if err := decodeArray(data, &records); err != nil {
		return nil, fmt.Errorf("lights: %w", err)
	}
	return lo.Map(records, func(r lightRecord, _ int) device.Light {
		return device.Light{ID: device.LightIDFromDevice(r.ID), Active: r.IsActive}
	}), nil
}

func decodeACData(data json.RawMessage) ([]ACDatum, error) {
	var records []ACDatum
	if err := decodeArray(data, &records); err != nil {
		return nil, fmt.Errorf("ac: %w", err)
	}
	return records, nil
}

func decodeArray(data json.RawMessage, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return fmt.Errorf("%w: expected an array, got %.40q", device.ErrMalformedResponse, string(data))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", device.ErrMalformedResponse, err)
	}
	return nil
}

// foldACData merges attribute records into one ACData. Records are sorted
// first so that duplicates resolve the same way in any order. Unreported or
// unparseable attributes stay nil.
func foldACData(records []ACDatum) device.ACData {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b ACDatum) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		if c := strings.Compare(a.ReadValue, b.ReadValue); c != 0 {
			return c
		}
		return cmp.Compare(boolGauge(a.IsActive), boolGauge(b.IsActive))
	})
	attr := func(id int) (ACDatum, bool) {
		return lo.Find(sorted, func(d ACDatum) bool { return d.ID == id })
	}

	var ac device.ACData
	if d, ok := attr(acRoomTemp); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(d.ReadValue), 64); err == nil {
			ac.RoomTemp = &v
		}
	}
	if d, ok := attr(acSetTemp); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(d.ReadValue), 64); err == nil {
			t := int(math.Trunc(v))
			ac.SetTemp = &t
		}
	}
	if d, ok := attr(acFanReport); ok {
		if i := slices.Index(fanReadings[:], strings.TrimSpace(d.ReadValue)); i >= 0 {
			f := device.FanSpeed(i)
			ac.FanSpeed = &f
		}
	}
	if d, ok := attr(acActive); ok {
		active := d.IsActive
		ac.Active = &active
	}
	return ac
}

// planACSteps lists the actuators to trigger, in order, to move the AC from
// baseline to target. The set temperature can only be nudged one degree at a
// time, and only when the baseline reports one.
func planACSteps(baseline, target device.ACData) ([]int, error) {
	var steps []int

	if target.SetTemp != nil && baseline.SetTemp != nil {
		delta := *target.SetTemp - *baseline.SetTemp
		step := acStepUp
		if delta < 0 {
			step = acStepDown
			delta = -delta
		}
		for i := 0; i < delta; i++ {
			steps = append(steps, step)
		}
	}

	if target.FanSpeed != nil {
		if !target.FanSpeed.Valid() {
			return nil, fmt.Errorf("%w: fan speed %d", device.ErrValidation, int(*target.FanSpeed))
		}
		steps = append(steps, acFanAuto+int(*target.FanSpeed))
	}

	if target.Active != nil {
		steps = append(steps, lo.Ternary(*target.Active, acActive, acOff))
	}

	return steps, nil
}

// applyACTarget returns baseline with every field planACSteps acted on
// replaced by its target value.
func applyACTarget(baseline, target device.ACData) device.ACData {
	out := baseline
	if target.SetTemp != nil && baseline.SetTemp != nil {
		out.SetTemp = lo.ToPtr(*target.SetTemp)
	}
	if target.FanSpeed != nil {
		out.FanSpeed = lo.ToPtr(*target.FanSpeed)
	}
	if target.Active != nil {
		out.Active = lo.ToPtr(*target.Active)
	}
	return out
}
