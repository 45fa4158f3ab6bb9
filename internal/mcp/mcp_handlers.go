package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/bikedash/core"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.DatasetLoader
	mgr     contract.CacheManager
}

// prepare clones the base config and applies the per-request data path and selection.
func (h *toolHandler) prepare(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("data_path", ""); p != "" {
		cfg.DataPath = p
	}
	err := contract.RevalidateSelection(cfg,
		request.GetString("from", ""),
		request.GetString("to", ""),
		request.GetString("seasons", ""))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// run executes one view with a capturing writer and returns its result as indented JSON.
func (h *toolHandler) run(ctx context.Context, request mcp.CallToolRequest, exec core.ExecutorFunc) (*mcp.CallToolResult, error) {
	cfg, err := h.prepare(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid selection: %v", err)), nil
	}

	ctx = core.WithCommand(core.WithSuppressHeader(ctx), "mcp")
	capture := &captureWriter{}
	if err := exec(ctx, cfg, h.loader, h.mgr, capture); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard query failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(capture.result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, request, core.ExecuteSummary)
}

func (h *toolHandler) handleGetHourlyPattern(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, request, core.ExecuteHourly)
}

func (h *toolHandler) handleGetCategoryMeans(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch by := request.GetString("by", "season"); by {
	case "season":
		return h.run(ctx, request, core.ExecuteSeasons)
	case "weather":
		return h.run(ctx, request, core.ExecuteWeather)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid grouping %q. must be season or weather", by)), nil
	}
}

func (h *toolHandler) handleGetDistribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, request, core.ExecuteDistribution)
}

func (h *toolHandler) handleGetDemandClusters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, request, core.ExecuteClusters)
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, request, core.ExecuteDashboard)
}

func (h *toolHandler) handleGetDatasetBounds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, request, core.ExecuteBounds)
}
