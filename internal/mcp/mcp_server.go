// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// selectionOptions are the filter parameters every dashboard tool accepts.
func selectionOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("data_path", mcp.Description("Path to the rental dataset (CSV or Parquet). Defaults to the server's dataset.")),
		mcp.WithString("from", mcp.Description("First date to include, YYYY-MM-DD. Defaults to the first date in the data.")),
		mcp.WithString("to", mcp.Description("Last date to include, YYYY-MM-DD. Defaults to the last date in the data.")),
		mcp.WithString("seasons", mcp.Description("Comma-separated seasons to include (e.g. 'Spring,Summer'), or 'none'. Defaults to all.")),
	}
}

// newDashboardTool builds a tool with the shared selection parameters plus any extras.
func newDashboardTool(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, selectionOptions()...)
	return mcp.NewTool(name, append(opts, extra...)...)
}

// NewMCPServer initializes and configures the bikedash MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Bike Rental Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  loader,
		mgr:     mgr,
	}

	// --- 1. Tool: get_summary ---
	s.AddTool(newDashboardTool("get_summary",
		"Total rentals, mean hourly rentals, mean temperature and distinct days for the selection."),
		h.handleGetSummary)

	// --- 2. Tool: get_hourly_pattern ---
	s.AddTool(newDashboardTool("get_hourly_pattern",
		"Mean hourly rentals by hour of day, one series for working days and one for weekends/holidays."),
		h.handleGetHourlyPattern)

	// --- 3. Tool: get_category_means ---
	s.AddTool(newDashboardTool("get_category_means",
		"Mean rentals per season or per weather condition.",
		mcp.WithString("by", mcp.Description("Grouping: season (mean daily rentals) or weather (hourly and daily). Defaults to 'season'."),
			mcp.Enum("season", "weather")),
	), h.handleGetCategoryMeans)

	// --- 4. Tool: get_distribution ---
	s.AddTool(newDashboardTool("get_distribution",
		"Five-number summary (min, Q1, median, Q3, max) of daily rentals per season."),
		h.handleGetDistribution)

	// --- 5. Tool: get_demand_clusters ---
	s.AddTool(newDashboardTool("get_demand_clusters",
		"Temperature and hourly rental points grouped by demand cluster."),
		h.handleGetDemandClusters)

	// --- 6. Tool: get_dashboard ---
	s.AddTool(newDashboardTool("get_dashboard",
		"Every metric and aggregate of the dashboard in one response."),
		h.handleGetDashboard)

	// --- 7. Tool: get_dataset_bounds ---
	s.AddTool(mcp.NewTool("get_dataset_bounds",
		mcp.WithDescription("First and last date, seasons present and record count of the dataset."),
		mcp.WithString("data_path", mcp.Description("Path to the rental dataset (CSV or Parquet).")),
	), h.handleGetDatasetBounds)

	return s
}

// StartMCPServer starts the bikedash MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, loader, mgr)
	return server.ServeStdio(s)
}
