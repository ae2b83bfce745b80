package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check whether the Interra hub session is live"),
		),
		s.handleGetHealth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_lights",
			mcp.WithDescription("List the light fixtures in the room with their on/off state"),
		),
		s.handleListLights,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_light",
			mcp.WithDescription("Get the on/off state of one light fixture"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Light id"),
				mcp.Enum(string(device.LightCeiling), string(device.LightShelf)),
			),
		),
		s.handleGetLight,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("switch_light",
			mcp.WithDescription("Turn a light fixture on or off"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Light id"),
				mcp.Enum(string(device.LightCeiling), string(device.LightShelf)),
			),
			mcp.WithBoolean("active",
				mcp.Required(),
				mcp.Description("true to turn the light on, false to turn it off"),
			),
		),
		s.handleSwitchLight,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_ac",
			mcp.WithDescription("Get the AC state: room temperature, set temperature, fan speed and power"),
		),
		s.handleGetAC,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_ac",
			mcp.WithDescription("Change the AC. Omitted parameters are left unchanged. The set temperature moves one degree at a time, so large changes take a few seconds."),
			mcp.WithNumber("set_temp",
				mcp.Description("Target temperature in Celsius (20-25)"),
				mcp.Min(20),
				mcp.Max(25),
			),
			mcp.WithString("fan_speed",
				mcp.Description("Fan speed"),
				mcp.Enum("auto", "slow", "medium", "fast"),
			),
			mcp.WithBoolean("active",
				mcp.Description("true to run the AC, false to turn it off"),
			),
		),
		s.handleSetAC,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reconnect",
			mcp.WithDescription("Drop the hub connection and log in again"),
		),
		s.handleReconnect,
	)
}
