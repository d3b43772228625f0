package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bamcapital/bam-portal/internal/common"
	"github.com/bamcapital/bam-portal/internal/config"
	"github.com/bamcapital/bam-portal/internal/models"
)

// registerTools registers the portal's tool set and returns the count.
func registerTools(s *server.MCPServer, svc Services) int {
	s.AddTool(generateReportTool(), generateReportHandler(svc))
	s.AddTool(askAdvisorTool(), askAdvisorHandler(svc))
	s.AddTool(marketSnapshotTool(), marketSnapshotHandler(svc))
	s.AddTool(recentNewsTool(), recentNewsHandler(svc))
	s.AddTool(versionTool(), versionHandler())
	return 5
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v as the tool result text.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

func generateReportTool() mcp.Tool {
	return mcp.NewTool("generate_report",
		mcp.WithDescription("Generate a personalized investment report from a risk profile. Falls back to the baseline model if the advisory backend is unavailable."),
		mcp.WithString("risk_appetite",
			mcp.Description("Conservative, Moderate, or Aggressive"),
			mcp.Required(),
		),
		mcp.WithNumber("investment_horizon",
			mcp.Description("Investment horizon in years (1-20)"),
			mcp.Required(),
		),
		mcp.WithNumber("income_level",
			mcp.Description("Annual income in INR"),
			mcp.Required(),
		),
	)
}

func generateReportHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile := models.UserProfile{
			RiskCategory: models.RiskCategory(r.GetString("risk_appetite", "")),
			HorizonYears: r.GetInt("investment_horizon", 0),
			AnnualIncome: r.GetFloat("income_level", 0),
		}

		generated, err := svc.Reports.Generate(ctx, profile, 1)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		summary := fmt.Sprintf("%s profile, %d year horizon, income %s (source: %s)",
			generated.RiskCategory, generated.HorizonYears, common.FormatINR(generated.AnnualIncome), generated.Source)

		out, err := json.Marshal(generated)
		if err != nil {
			return errorResult("failed to marshal report"), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(summary),
				mcp.NewTextContent(string(out)),
			},
		}, nil
	}
}

func askAdvisorTool() mcp.Tool {
	return mcp.NewTool("ask_advisor",
		mcp.WithDescription("Ask the financial advisor a question. Failures are reported inline as an assistant message."),
		mcp.WithString("query",
			mcp.Description("The question to ask"),
			mcp.Required(),
		),
		mcp.WithString("session_id",
			mcp.Description("Chat session to continue; omit to start a new one"),
		),
	)
}

func askAdvisorHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session := svc.Chat.GetOrCreate(r.GetString("session_id", ""))

		transcript, err := session.Submit(ctx, r.GetString("query", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(map[string]interface{}{
			"session_id": session.ID(),
			"messages":   transcript,
		}), nil
	}
}

func marketSnapshotTool() mcp.Tool {
	return mcp.NewTool("market_snapshot",
		mcp.WithDescription("Fetch live index and watchlist quotes. Individual quote failures are dropped from the result."),
	)
}

func marketSnapshotHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap := svc.Market.Refresh(ctx)

		var b strings.Builder
		for _, q := range append(append([]models.Quote{}, snap.Indices...), snap.Stocks...) {
			fmt.Fprintf(&b, "%s: %.2f %s\n", q.Symbol, q.Price, common.FormatQuoteChange(q.Change, q.ChangePct))
		}

		out, err := json.Marshal(snap)
		if err != nil {
			return errorResult("failed to marshal snapshot"), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(b.String()),
				mcp.NewTextContent(string(out)),
			},
		}, nil
	}
}

func recentNewsTool() mcp.Tool {
	return mcp.NewTool("recent_news",
		mcp.WithDescription("Fetch recent summarized financial news articles."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum articles to return (default 10)"),
		),
	)
}

func recentNewsHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		articles := svc.Advisory.GetRecentNews(ctx, r.GetInt("limit", 0))
		return jsonResult(articles), nil
	}
}

func versionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the BAM portal version. Use this to verify connectivity."),
	)
}

func versionHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]string{
			"version": config.GetVersion(),
			"build":   config.GetBuild(),
			"commit":  config.GetGitCommit(),
		}), nil
	}
}
