package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var toolRegistry = map[string]func(*server.MCPServer, *Service){
	"parse_schedule":   registerParseScheduleTool,
	"analyze_schedule": registerAnalyzeScheduleTool,
	"select_week":      registerSelectWeekTool,
	"parse_hour_range": registerParseHourRangeTool,
}

// registerTools adds the named tools, or all of them when names is empty.
func registerTools(srv *server.MCPServer, svc *Service, names []string) error {
	if len(names) == 0 {
		names = ToolNames()
	}
	for _, name := range names {
		register, ok := toolRegistry[name]
		if !ok {
			return fmt.Errorf("unknown tool %q (known: %s)", name, strings.Join(ToolNames(), ", "))
		}
		register(srv, svc)
	}
	return nil
}

// scheduleArgs are shared by every tool that reads a schedule.
type scheduleArgs struct {
	Text string `json:"text"`
	Path string `json:"path"`
}

func withSchedule() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("text",
			mcp.Description("Schedule file content. Takes precedence over path."),
		),
		mcp.WithString("path",
			mcp.Description("Path to a schedule file. Defaults to the last schedule file used."),
		),
	}
}

func registerParseScheduleTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Parse a recurring schedule into commitments, categories and line errors."),
	}, withSchedule()...)
	tool := mcp.NewTool("parse_schedule", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args scheduleArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		sum, err := svc.Parse(ctx, args.Text, args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func registerAnalyzeScheduleTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Report overlaps and weekly hours per category for a schedule."),
	}, withSchedule()...)
	tool := mcp.NewTool("analyze_schedule", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args scheduleArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		sum, err := svc.Analyze(ctx, args.Text, args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func registerSelectWeekTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List the commitments that happen in week A or week B of the cycle."),
		mcp.WithString("week",
			mcp.Required(),
			mcp.Description("Week variant."),
			mcp.Enum("A", "B"),
		),
	}, withSchedule()...)
	tool := mcp.NewTool("select_week", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			scheduleArgs
			Week string `json:"week"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SelectWeek(ctx, args.Text, args.Path, args.Week)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerParseHourRangeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"parse_hour_range",
		mcp.WithDescription("Validate a visible hour window such as 7a to 24."),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("First visible hour, e.g. 7a or 07:00."),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Hour the window stops at, e.g. 10p or 24."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start, err := request.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := request.RequireString("end")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ParseHourRange(start, end)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
