package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

// Handler handles MCP tool requests: parses input, calls the service, formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) GetProfileTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile, err := h.service.GetProfile(ctx, req.GetString("user_id", ""))
		if err != nil {
			log.Errorf("mcp get_profile: %s", err)
			return mcp.NewToolResultError("Error fetching profile: " + err.Error()), nil
		}
		return jsonResult(profile), nil
	}
}

func (h *Handler) GetHistoryTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 0)
		if limit < 0 {
			return mcp.NewToolResultError("limit must not be negative"), nil
		}
		history, err := h.service.GetHistory(ctx, req.GetString("user_id", ""), limit)
		if err != nil {
			log.Errorf("mcp get_history: %s", err)
			return mcp.NewToolResultError("Error fetching history: " + err.Error()), nil
		}
		return jsonResult(history), nil
	}
}

func (h *Handler) GetBadgesTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		statuses, err := h.service.GetBadges(ctx, req.GetString("user_id", ""))
		if err != nil {
			log.Errorf("mcp get_badges: %s", err)
			return mcp.NewToolResultError("Error fetching badges: " + err.Error()), nil
		}
		return jsonResult(statuses), nil
	}
}

func (h *Handler) GetStatsTool() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions := req.GetInt("sessions", 0)
		if sessions < 0 {
			return mcp.NewToolResultError("sessions must not be negative"), nil
		}
		stats, err := h.service.GetStats(ctx, req.GetString("user_id", ""), sessions)
		if err != nil {
			log.Errorf("mcp get_stats: %s", err)
			return mcp.NewToolResultError("Error fetching stats: " + err.Error()), nil
		}
		return jsonResult(stats), nil
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Error encoding response: " + err.Error())
	}
	return mcp.NewToolResultText(string(raw))
}
