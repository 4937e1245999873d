package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neilberkman/rinselog/internal/core/dates"
	"github.com/neilberkman/rinselog/internal/core/db"
	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// ListRecentLogsArgs defines arguments for the list_recent_logs tool
type ListRecentLogsArgs struct {
	Limit      int    `json:"limit,omitempty" jsonschema:"description=Max logs to return (default: 20)"`
	AfterDate  string `json:"after_date,omitempty" jsonschema:"description=Only logs saved on or after this date (e.g. 2025-01-01 or 'last week')"`
	BeforeDate string `json:"before_date,omitempty" jsonschema:"description=Only logs saved on or before this date"`
}

// GetLogArgs defines arguments for the get_log tool
type GetLogArgs struct {
	ID int64 `json:"id" jsonschema:"description=Log id as returned by list_recent_logs,required"`
}

// LogSummary represents a saved log in the list view
type LogSummary struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	SavedAt      string `json:"saved_at"`
	Rounds       int    `json:"rounds"`
	TotalTimeMin string `json:"total_time_min,omitempty"`
	FinalClarity string `json:"final_clarity,omitempty"`
	OverallFeel  string `json:"overall_feel,omitempty"`
}

// LogDetail is a saved log with its full form data
type LogDetail struct {
	ID      int64             `json:"id"`
	SavedAt string            `json:"saved_at"`
	Data    models.SessionLog `json:"data"`
}

// StatsResult is the log_stats payload
type StatsResult struct {
	TotalLogs       int            `json:"total_logs"`
	TotalRounds     int            `json:"total_rounds"`
	AvgRounds       float64        `json:"avg_rounds"`
	AvgTotalTimeMin float64        `json:"avg_total_time_min"`
	TimedLogs       int            `json:"timed_logs"`
	OldestSave      string         `json:"oldest_save,omitempty"`
	NewestSave      string         `json:"newest_save,omitempty"`
	OverallFeels    map[string]int `json:"overall_feels"`
	RoundTypes      map[string]int `json:"round_types"`
}

// StartServer starts the MCP server
func StartServer(dbPath string) error {
	// Open database
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	s := NewServer(history.NewStore(database), time.Now)
	return server.ServeStdio(s)
}

// NewServer registers the read-only history tools.
func NewServer(store *history.Store, now func() time.Time) *server.MCPServer {
	s := server.NewMCPServer(
		"RinseLog",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_recent_logs",
		mcp.WithDescription("List saved deep rinse session logs, newest first. Supports filtering by save date."),
		mcp.WithNumber("limit",
			mcp.Description("Max logs to return (default: 20)")),
		mcp.WithString("after_date",
			mcp.Description("Only logs saved on or after this date (e.g. 2025-01-01, 'yesterday', 'last week')")),
		mcp.WithString("before_date",
			mcp.Description("Only logs saved on or before this date")),
	)
	s.AddTool(listTool, makeListRecentLogsHandler(store, now))

	getTool := mcp.NewTool("get_log",
		mcp.WithDescription("Get one saved session log with all rounds and outcome fields."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Log id as returned by list_recent_logs")),
	)
	s.AddTool(getTool, makeGetLogHandler(store))

	statsTool := mcp.NewTool("log_stats",
		mcp.WithDescription("Summary statistics over all saved session logs."),
	)
	s.AddTool(statsTool, makeLogStatsHandler(store))

	return s
}

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func makeListRecentLogsHandler(store *history.Store, now func() time.Time) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListRecentLogsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		// Set defaults
		limit := args.Limit
		if limit <= 0 {
			limit = 20
		}

		var after, before time.Time
		if args.AfterDate != "" {
			t, ok := dates.Parse(args.AfterDate, now())
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("invalid after_date: %q", args.AfterDate)), nil
			}
			after = dates.StartOfDay(t)
		}
		if args.BeforeDate != "" {
			t, ok := dates.Parse(args.BeforeDate, now())
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("invalid before_date: %q", args.BeforeDate)), nil
			}
			before = dates.EndOfDay(t)
		}

		// Pick up saves made by the TUI since the last call
		store.LoadAll()
		entries := store.Filter(after, before)
		if len(entries) > limit {
			entries = entries[:limit]
		}

		logs := []LogSummary{}
		for _, e := range entries {
			logs = append(logs, LogSummary{
				ID:           e.ID,
				Date:         e.Data.Date,
				SavedAt:      e.SavedAt().Format(timestampLayout),
				Rounds:       len(e.Data.Rounds),
				TotalTimeMin: e.Data.TotalTimeMin,
				FinalClarity: e.Data.FinalClarity,
				OverallFeel:  string(e.Data.OverallFeel),
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"logs": logs,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetLogHandler(store *history.Store) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetLogArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		store.LoadAll()
		entry, err := store.Get(args.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("log not found: %v", err)), nil
		}

		resultJSON, err := json.Marshal(LogDetail{
			ID:      entry.ID,
			SavedAt: entry.SavedAt().Format(timestampLayout),
			Data:    entry.Data,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeLogStatsHandler(store *history.Store) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store.LoadAll()
		stats := store.Stats()

		result := StatsResult{
			TotalLogs:       stats.TotalLogs,
			TotalRounds:     stats.TotalRounds,
			AvgRounds:       stats.AvgRounds,
			AvgTotalTimeMin: stats.AvgTotalTimeMin,
			TimedLogs:       stats.TimedLogs,
			OverallFeels:    map[string]int{},
			RoundTypes:      map[string]int{},
		}
		if stats.TotalLogs > 0 {
			result.OldestSave = stats.OldestSave.Format(timestampLayout)
			result.NewestSave = stats.NewestSave.Format(timestampLayout)
		}
		for k, v := range stats.OverallFeels {
			result.OverallFeels[string(k)] = v
		}
		for k, v := range stats.RoundTypes {
			result.RoundTypes[string(k)] = v
		}

		resultJSON, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
