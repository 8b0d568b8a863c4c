// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
)

const timestampLayout = "2006-01-02T15:04:05"

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	timer         ports.TimerControl
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(timer ports.TimerControl, stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		timer:         timer,
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"tempo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_status
	s.server.AddTool(
		mcp.NewTool(
			"get_status",
			mcp.WithDescription("Get the current timer state: mode, status, remaining seconds, completed sessions, and interruptions"),
		),
		s.handleGetStatus,
	)

	// Tool: start_timer
	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start or resume the countdown for the current mode"),
		),
		s.handleStartTimer,
	)

	// Tool: pause_timer
	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the running countdown (counts as an interruption)"),
		),
		s.handlePauseTimer,
	)

	// Tool: reset_timer
	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Cancel the countdown and restore the current mode's full duration"),
		),
		s.handleResetTimer,
	)

	// Tool: skip_timer
	s.server.AddTool(
		mcp.NewTool(
			"skip_timer",
			mcp.WithDescription("Complete the current interval immediately and advance to the next mode"),
		),
		s.handleSkipTimer,
	)

	// Tool: switch_mode
	switchModeTool := mcp.NewTool(
		"switch_mode",
		mcp.WithDescription("Switch the timer to a different mode and reset it"),
		mcp.WithString(
			"mode",
			mcp.Required(),
			mcp.Description("Target mode: work, short_break, long_break"),
			mcp.Enum("work", "short_break", "long_break"),
		),
	)
	s.server.AddTool(switchModeTool, s.handleSwitchMode)

	// Tool: log_mood
	logMoodTool := mcp.NewTool(
		"log_mood",
		mcp.WithDescription("Record a mood check-in with energy and stress levels"),
		mcp.WithString(
			"mood",
			mcp.Required(),
			mcp.Description("Mood level: very_bad, bad, neutral, good, very_good"),
			mcp.Enum("very_bad", "bad", "neutral", "good", "very_good"),
		),
		mcp.WithNumber(
			"energy",
			mcp.Required(),
			mcp.Description("Energy level from 1 (drained) to 5 (energized)"),
		),
		mcp.WithNumber(
			"stress",
			mcp.Required(),
			mcp.Description("Stress level from 1 (calm) to 5 (stressed)"),
		),
		mcp.WithString(
			"note",
			mcp.Description("Optional free-form note"),
		),
	)
	s.server.AddTool(logMoodTool, s.handleLogMood)

	// Tool: get_insights
	s.server.AddTool(
		mcp.NewTool(
			"get_insights",
			mcp.WithDescription("Get productivity insights: patterns, burnout risk, optimal session length, predicted next session, and suggestions"),
		),
		s.handleGetInsights,
	)

	// Tool: list_recent_sessions
	listSessionsTool := mcp.NewTool(
		"list_recent_sessions",
		mcp.WithDescription("List recent completed sessions, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of sessions to return (default: 10)"),
		),
	)
	s.server.AddTool(listSessionsTool, s.handleListRecentSessions)

	// Tool: list_recent_moods
	listMoodsTool := mcp.NewTool(
		"list_recent_moods",
		mcp.WithDescription("List recent mood entries, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of entries to return (default: 10)"),
		),
	)
	s.server.AddTool(listMoodsTool, s.handleListRecentMoods)
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

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// snapshotResult renders the timer state as a tool result.
func (s *Server) snapshotResult() (*mcp.CallToolResult, error) {
	snapshot := s.timer.Snapshot()

	result := map[string]interface{}{
		"mode":               string(snapshot.Mode),
		"status":             string(snapshot.Status),
		"remaining_seconds":  snapshot.Remaining,
		"completed_sessions": snapshot.CompletedSessions,
		"interruptions":      snapshot.Interruptions,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timer state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetStatus handles the get_status tool.
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshotResult()
}

// handleStartTimer handles the start_timer tool.
func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.timer.Start()
	return s.snapshotResult()
}

// handlePauseTimer handles the pause_timer tool.
func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.timer.Pause()
	return s.snapshotResult()
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.timer.Reset()
	return s.snapshotResult()
}

// handleSkipTimer handles the skip_timer tool.
func (s *Server) handleSkipTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.timer.Skip()
	return s.snapshotResult()
}

// handleSwitchMode handles the switch_mode tool.
func (s *Server) handleSwitchMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode is required: " + err.Error()), nil
	}

	mode, err := domain.ValidateMode(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q: must be work, short_break, or long_break", raw)), nil
	}

	s.timer.SwitchMode(mode)
	return s.snapshotResult()
}

// handleLogMood handles the log_mood tool.
func (s *Server) handleLogMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawMood, err := request.RequireString("mood")
	if err != nil {
		return mcp.NewToolResultError("mood is required: " + err.Error()), nil
	}

	mood := domain.MoodLevel(rawMood)
	energy := int(request.GetFloat("energy", 0))
	stress := int(request.GetFloat("stress", 0))
	note := request.GetString("note", "")

	entry, err := s.stateProvider.LogMood(ctx, mood, energy, stress, note)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to log mood: %v", err)), nil
	}

	result := map[string]interface{}{
		"id":         entry.ID,
		"mood":       string(entry.Mood),
		"energy":     entry.Energy,
		"stress":     entry.Stress,
		"note":       entry.Note,
		"created_at": entry.CreatedAt.Format(timestampLayout),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mood entry: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetInsights handles the get_insights tool.
func (s *Server) handleGetInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.stateProvider.Insights(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute insights: %v", err)), nil
	}

	var suggestions []map[string]interface{}
	for _, suggestion := range report.Suggestions {
		suggestions = append(suggestions, map[string]interface{}{
			"id":         suggestion.ID,
			"type":       string(suggestion.Type),
			"message":    suggestion.Message,
			"confidence": suggestion.Confidence,
			"reasons":    suggestion.Reasons,
		})
	}

	result := map[string]interface{}{
		"generated_at": report.GeneratedAt.Format(timestampLayout),
		"patterns": map[string]interface{}{
			"best_time_of_day":         string(report.Patterns.BestTimeOfDay),
			"average_sessions_per_day": report.Patterns.AverageSessionsPerDay,
			"most_productive_day":      report.Patterns.MostProductiveDay.String(),
			"trend":                    string(report.Patterns.Trend),
		},
		"burnout": map[string]interface{}{
			"risk":    string(report.Burnout.Risk),
			"score":   report.Burnout.Score,
			"reasons": report.Burnout.Reasons,
		},
		"optimal_session_minutes": report.OptimalMinutes,
		"suggestions":             suggestions,
	}

	if report.NextSessionAt != nil {
		result["next_session_at"] = report.NextSessionAt.Format(timestampLayout)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal insights: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListRecentSessions handles the list_recent_sessions tool.
func (s *Server) handleListRecentSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 10))
	if limit <= 0 {
		limit = 10
	}

	sessions, err := s.stateProvider.RecentSessions(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}

	var sessionList []map[string]interface{}
	var totalWorkTime time.Duration

	for _, session := range sessions {
		sessionData := map[string]interface{}{
			"id":            session.ID,
			"mode":          string(session.Mode),
			"duration":      session.Duration().String(),
			"completed_at":  session.CompletedAt.Format(timestampLayout),
			"interruptions": session.Interruptions,
			"productivity":  session.ProductivityOrDefault(),
		}
		if session.TaskID != nil {
			sessionData["task_id"] = *session.TaskID
		}
		if len(session.Tags) > 0 {
			sessionData["tags"] = session.Tags
		}
		if session.Notes != "" {
			sessionData["notes"] = session.Notes
		}

		sessionList = append(sessionList, sessionData)

		if session.IsWork() {
			totalWorkTime += session.Duration()
		}
	}

	result := map[string]interface{}{
		"sessions":        sessionList,
		"total_count":     len(sessionList),
		"total_work_time": totalWorkTime.String(),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListRecentMoods handles the list_recent_moods tool.
func (s *Server) handleListRecentMoods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 10))
	if limit <= 0 {
		limit = 10
	}

	moods, err := s.stateProvider.RecentMoods(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list moods: %v", err)), nil
	}

	var moodList []map[string]interface{}
	for _, entry := range moods {
		moodData := map[string]interface{}{
			"id":         entry.ID,
			"mood":       string(entry.Mood),
			"energy":     entry.Energy,
			"stress":     entry.Stress,
			"created_at": entry.CreatedAt.Format(timestampLayout),
		}
		if entry.Note != "" {
			moodData["note"] = entry.Note
		}
		moodList = append(moodList, moodData)
	}

	result := map[string]interface{}{
		"moods":       moodList,
		"total_count": len(moodList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moods: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
