package mcp

import "github.com/IAmThe2ndHuman/interra-api/pkg/device"

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status     string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Controller string `json:"controller" jsonschema:"description=Hub session status"`
	Timestamp  string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// ListLightsOutput is the output for the list_lights tool
type ListLightsOutput struct {
	Lights []device.Light `json:"lights" jsonschema:"description=Light fixtures in the room"`
	Count  int            `json:"count" jsonschema:"description=Number of fixtures"`
}

// ACOutput is the output for the get_ac and set_ac tools
type ACOutput struct {
	RoomTemp *float64 `json:"room_temp" jsonschema:"description=Measured room temperature in Celsius"`
	SetTemp  *int     `json:"set_temp" jsonschema:"description=Target temperature in Celsius"`
	FanSpeed string   `json:"fan_speed,omitempty" jsonschema:"description=auto, slow, medium or fast"`
	Active   *bool    `json:"active" jsonschema:"description=Whether the AC is running"`
}

// ReconnectOutput is the output for the reconnect tool
type ReconnectOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the hub session was re-established"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// ACDataToOutput converts hub AC state into tool output
func ACDataToOutput(d device.ACData) ACOutput {
	out := ACOutput{
		RoomTemp: d.RoomTemp,
		SetTemp:  d.SetTemp,
		Active:   d.Active,
	}
	if d.FanSpeed != nil {
		out.FanSpeed = d.FanSpeed.String()
	}
	return out
}
