package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := GetHealthOutput{
		Status:     "healthy",
		Controller: "connected",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if !s.controller.IsConnected() {
		out.Status = "degraded"
		out.Controller = "disconnected"
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListLights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lights, err := s.controller.GetRoomLights(ctx, device.DefaultRoom)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list lights: %s", err)), nil
	}

	out := ListLightsOutput{
		Lights: lights,
		Count:  len(lights),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredLightID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lights, err := s.controller.GetRoomLights(ctx, device.DefaultRoom)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read lights: %s", err)), nil
	}

	light, ok := lo.Find(lights, func(l device.Light) bool { return l.ID == id })
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("light %q was not reported by the hub", id)), nil
	}
	return mcp.NewToolResultText(formatJSON(light)), nil
}

func (s *Server) handleSwitchLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredLightID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	active, ok := request.GetArguments()["active"].(bool)
	if !ok {
		return mcp.NewToolResultError(`parameter "active" must be a boolean`), nil
	}

	deviceID, _ := id.DeviceID()
	if err := s.controller.SwitchLight(ctx, deviceID, active); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to switch light: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(device.Light{ID: id, Active: active})), nil
}

func (s *Server) handleGetAC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := s.controller.GetACInfo(ctx, device.DefaultRoom)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read AC: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(ACDataToOutput(data))), nil
}

func (s *Server) handleSetAC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := s.acTarget(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := s.controller.SetACInfoRoom12(ctx, target)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set AC: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(ACDataToOutput(data))), nil
}

func (s *Server) handleReconnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.controller.Reconnect(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reconnect: %s", err)), nil
	}

	out := ReconnectOutput{
		Success: true,
		Message: "hub session restarted",
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// acTarget converts set_ac arguments into an ACData target and checks it
// against the same schema the HTTP API uses.
func (s *Server) acTarget(args map[string]any) (device.ACData, error) {
	var target device.ACData
	payload := map[string]any{}

	if v, ok := args["set_temp"]; ok && v != nil {
		t, ok := v.(float64)
		if !ok {
			return target, fmt.Errorf(`parameter "set_temp" must be a number`)
		}
		switch {
		case t > device.MaxSetTemp:
			return target, fmt.Errorf("set_temp %v is above the %d degree maximum", t, device.MaxSetTemp)
		case t < device.MinSetTemp:
			return target, fmt.Errorf("set_temp %v is below the %d degree minimum", t, device.MinSetTemp)
		}
		payload["setTemp"] = t
		target.SetTemp = lo.ToPtr(int(t))
	}

	if v, ok := args["fan_speed"]; ok && v != nil {
		name, ok := v.(string)
		if !ok {
			return target, fmt.Errorf(`parameter "fan_speed" must be a string`)
		}
		speed, err := device.ParseFanSpeed(name)
		if err != nil {
			return target, err
		}
		payload["fanSpeed"] = float64(speed)
		target.FanSpeed = &speed
	}

	if v, ok := args["active"]; ok && v != nil {
		active, ok := v.(bool)
		if !ok {
			return target, fmt.Errorf(`parameter "active" must be a boolean`)
		}
		payload["active"] = active
		target.Active = &active
	}

	if err := s.validator.ValidateACTarget(payload); err != nil {
		return device.ACData{}, err
	}
	return target, nil
}

// --- Helpers ---

func requiredLightID(request mcp.CallToolRequest) (device.LightID, error) {
	raw, err := requiredString(request, "id")
	if err != nil {
		return "", err
	}
	return device.ParseLightID(raw)
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := encodeJSON(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
