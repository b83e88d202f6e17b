package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const ServerName = "ironai-context"

var (
	toolGetProfile = mcp.NewTool("get_profile",
		mcp.WithDescription("Returns the training profile of a user: level, equipment, streak, XP and last workout date. A user that never trained gets the default profile."),
		mcp.WithString("user_id", mcp.Description("User identifier. Defaults to the guest user.")),
	)
	toolGetHistory = mcp.NewTool("get_history",
		mcp.WithDescription("Returns the finished workout sessions of a user, oldest first, with completed exercises, volume and duration."),
		mcp.WithString("user_id", mcp.Description("User identifier. Defaults to the guest user.")),
		mcp.WithNumber("limit", mcp.Description("Only return the last N sessions. 0 returns all.")),
	)
	toolGetBadges = mcp.NewTool("get_badges",
		mcp.WithDescription("Returns every badge with its unlocked flag for the user."),
		mcp.WithString("user_id", mcp.Description("User identifier. Defaults to the guest user.")),
	)
	toolGetStats = mcp.NewTool("get_stats",
		mcp.WithDescription("Returns the profile, lifetime totals (sessions, sets, volume) and the per-session volume series of the last sessions."),
		mcp.WithString("user_id", mcp.Description("User identifier. Defaults to the guest user.")),
		mcp.WithNumber("sessions", mcp.Description("Length of the volume series. Defaults to 7.")),
	)
)

// NewServer builds an MCP server exposing read-only training context tools.
// Served over stdio by cmd/ironai_mcp and over HTTP at /mcp by the main backend.
func NewServer(store ProfileReader, version string) *server.MCPServer {
	h := NewHandler(NewContextService(store))
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithInstructions("IronAI training data. Read user profiles, workout history, badges and volume stats."),
	)

	s.AddTools(
		server.ServerTool{Tool: toolGetProfile, Handler: h.GetProfileTool()},
		server.ServerTool{Tool: toolGetHistory, Handler: h.GetHistoryTool()},
		server.ServerTool{Tool: toolGetBadges, Handler: h.GetBadgesTool()},
		server.ServerTool{Tool: toolGetStats, Handler: h.GetStatsTool()},
	)

	return s
}
