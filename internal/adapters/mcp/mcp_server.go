// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ewalden/drift/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go. All tools are
// read-only queries over the listening history; playback itself is never
// driven over MCP.
type Server struct {
	server   *server.MCPServer
	provider ports.MCPProvider
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.MCPProvider) *Server {
	s := &Server{
		provider: provider,
	}

	s.server = server.NewMCPServer(
		"drift",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: list_library
	s.server.AddTool(
		mcp.NewTool(
			"list_library",
			mcp.WithDescription("List all guided sessions in the local library"),
		),
		s.handleListLibrary,
	)

	// Tool: get_feedback_history
	feedbackTool := mcp.NewTool(
		"get_feedback_history",
		mcp.WithDescription("Get emotional feedback entries committed during recent sessions"),
		mcp.WithNumber(
			"days",
			mcp.Description("How many days back to look (default: 7)"),
		),
	)
	s.server.AddTool(feedbackTool, s.handleGetFeedbackHistory)

	// Tool: get_session_records
	recordsTool := mcp.NewTool(
		"get_session_records",
		mcp.WithDescription("Get completed listening session records"),
		mcp.WithNumber(
			"days",
			mcp.Description("How many days back to look (default: 7)"),
		),
	)
	s.server.AddTool(recordsTool, s.handleGetSessionRecords)

	// Tool: get_stats
	s.server.AddTool(
		mcp.NewTool(
			"get_stats",
			mcp.WithDescription("Get aggregate listening statistics: sessions completed, total minutes, mean rating, and feedback label counts"),
		),
		s.handleGetStats,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// sinceFromRequest resolves the "days" argument to a cutoff time.
func sinceFromRequest(request mcp.CallToolRequest) time.Time {
	days := int(request.GetFloat("days", 7))
	if days <= 0 {
		days = 7
	}
	return time.Now().AddDate(0, 0, -days)
}

// handleListLibrary handles the list_library tool.
func (s *Server) handleListLibrary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.provider.ListLibrary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}

	var itemList []map[string]interface{}
	for _, item := range items {
		itemList = append(itemList, map[string]interface{}{
			"id":               item.ID,
			"title":            item.Title,
			"guide":            item.Guide,
			"duration_seconds": item.DurationSeconds,
			"created_at":       item.CreatedAt.Format("2006-01-02T15:04:05"),
		})
	}

	result := map[string]interface{}{
		"items":       itemList,
		"total_count": len(itemList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal library: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetFeedbackHistory handles the get_feedback_history tool.
func (s *Server) handleGetFeedbackHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since := sinceFromRequest(request)

	entries, err := s.provider.FeedbackHistory(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback history: %w", err)
	}

	var entryList []map[string]interface{}
	for _, entry := range entries {
		entryList = append(entryList, map[string]interface{}{
			"id":                entry.ID,
			"session_id":        entry.SessionID,
			"label":             string(entry.Label),
			"timestamp_seconds": entry.TimestampSeconds,
			"date":              entry.Date.Format("2006-01-02T15:04:05"),
		})
	}

	result := map[string]interface{}{
		"entries":     entryList,
		"total_count": len(entryList),
		"since":       since.Format("2006-01-02"),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feedback history: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetSessionRecords handles the get_session_records tool.
func (s *Server) handleGetSessionRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	since := sinceFromRequest(request)

	records, err := s.provider.SessionRecords(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get session records: %w", err)
	}

	var recordList []map[string]interface{}
	for _, record := range records {
		recordList = append(recordList, map[string]interface{}{
			"id":         record.ID,
			"session_id": record.SessionID,
			"minutes":    record.Minutes,
			"module":     record.Module,
			"created_at": record.CreatedAt.Format("2006-01-02T15:04:05"),
		})
	}

	result := map[string]interface{}{
		"records":     recordList,
		"total_count": len(recordList),
		"since":       since.Format("2006-01-02"),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session records: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetStats handles the get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.provider.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	labelCounts := make(map[string]int, len(stats.LabelCounts))
	for label, count := range stats.LabelCounts {
		labelCounts[string(label)] = count
	}

	result := map[string]interface{}{
		"sessions_completed": stats.SessionsCompleted,
		"total_minutes":      stats.TotalMinutes,
		"mean_rating":        stats.MeanRating,
		"label_counts":       labelCounts,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
