package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/devicetest"
	"github.com/IAmThe2ndHuman/interra-api/pkg/device/schema"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func callTool(t *testing.T, h toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func newTestServer() (*Server, *devicetest.Controller) {
	fc := devicetest.New()
	return NewServer(fc, schema.NewValidator()), fc
}

func TestGetHealth(t *testing.T) {
	s, fc := newTestServer()

	text, isErr := callTool(t, s.handleGetHealth, nil)
	require.False(t, isErr)
	var out GetHealthOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, "healthy", out.Status)

	fc.Connected = false
	text, _ = callTool(t, s.handleGetHealth, nil)
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "disconnected", out.Controller)
}

func TestListAndGetLight(t *testing.T) {
	s, _ := newTestServer()

	text, isErr := callTool(t, s.handleListLights, nil)
	require.False(t, isErr)
	var list ListLightsOutput
	require.NoError(t, json.Unmarshal([]byte(text), &list))
	assert.Equal(t, 2, list.Count)

	text, isErr = callTool(t, s.handleGetLight, map[string]any{"id": "ceilingLights"})
	require.False(t, isErr)
	assert.JSONEq(t, `{"id":"ceilingLights","active":true}`, text)

	_, isErr = callTool(t, s.handleGetLight, map[string]any{"id": "lava"})
	assert.True(t, isErr)

	_, isErr = callTool(t, s.handleGetLight, map[string]any{})
	assert.True(t, isErr)
}

func TestSwitchLight(t *testing.T) {
	s, fc := newTestServer()

	text, isErr := callTool(t, s.handleSwitchLight, map[string]any{"id": "shelfLight", "active": true})
	require.False(t, isErr, text)
	assert.JSONEq(t, `{"id":"shelfLight","active":true}`, text)
	assert.Equal(t, map[uint16]bool{device.ShelfLightDeviceID: true}, fc.Switched)

	_, isErr = callTool(t, s.handleSwitchLight, map[string]any{"id": "shelfLight", "active": "on"})
	assert.True(t, isErr)
}

func TestGetAC(t *testing.T) {
	s, _ := newTestServer()

	text, isErr := callTool(t, s.handleGetAC, nil)
	require.False(t, isErr)
	assert.JSONEq(t, `{"room_temp":23.5,"set_temp":22,"fan_speed":"slow","active":true}`, text)
}

func TestSetAC(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		check   func(t *testing.T, target device.ACData)
	}{
		{
			name: "temperature",
			args: map[string]any{"set_temp": float64(24)},
			check: func(t *testing.T, target device.ACData) {
				require.NotNil(t, target.SetTemp)
				assert.Equal(t, 24, *target.SetTemp)
				assert.Nil(t, target.FanSpeed)
				assert.Nil(t, target.Active)
			},
		},
		{
			name: "fan and power",
			args: map[string]any{"fan_speed": "fast", "active": false},
			check: func(t *testing.T, target device.ACData) {
				require.NotNil(t, target.FanSpeed)
				assert.Equal(t, device.FanFast, *target.FanSpeed)
				require.NotNil(t, target.Active)
				assert.False(t, *target.Active)
			},
		},
		{name: "too hot", args: map[string]any{"set_temp": float64(30)}, wantErr: true},
		{name: "too cold", args: map[string]any{"set_temp": float64(10)}, wantErr: true},
		{name: "fractional", args: map[string]any{"set_temp": 22.5}, wantErr: true},
		{name: "bad fan", args: map[string]any{"fan_speed": "turbo"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fc := newTestServer()

			text, isErr := callTool(t, s.handleSetAC, tt.args)
			if tt.wantErr {
				assert.True(t, isErr)
				assert.Empty(t, fc.ACTargets)
				return
			}
			require.False(t, isErr, text)
			require.Len(t, fc.ACTargets, 1)
			tt.check(t, fc.ACTargets[0])
		})
	}
}

func TestReconnect(t *testing.T) {
	s, fc := newTestServer()

	_, isErr := callTool(t, s.handleReconnect, nil)
	assert.False(t, isErr)
	assert.Equal(t, 1, fc.Reconnects)

	fc.Err = device.ErrNotConnected
	text, isErr := callTool(t, s.handleReconnect, nil)
	assert.True(t, isErr)
	assert.Contains(t, text, "not connected")
}
