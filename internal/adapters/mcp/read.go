package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"phototransfer/internal/domain"
	"phototransfer/internal/ports"
)

// RegisterReadTools adds the read-only ledger tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, ledger ports.TransferLedger) {
	s.AddTool(queryTransferTool(), queryTransferHandler(ledger))
	s.AddTool(historyTool(), historyHandler(ledger))
	s.AddTool(statsTool(), statsHandler(ledger))
}

// --- query_transfer ---

func queryTransferTool() mcp.Tool {
	return mcp.NewTool("query_transfer",
		mcp.WithDescription("Check whether a source file has been transferred. Returns the recorded destinations, optionally restricted to one output root."),
		mcp.WithString("original_path",
			mcp.Description("Source file path as it was seen during the transfer run"),
			mcp.Required(),
		),
		mcp.WithString("output_root",
			mcp.Description("Restrict the answer to transfers into this output root"),
		),
	)
}

func queryTransferHandler(ledger ports.TransferLedger) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		originalPath := req.GetString("original_path", "")
		if originalPath == "" {
			return toolError(fmt.Errorf("original_path is required"))
		}
		outputRoot := req.GetString("output_root", "")

		records, err := ledger.HistoryFor(originalPath)
		if err != nil {
			return toolError(err)
		}
		if outputRoot != "" {
			var filtered []domain.TransferRecord
			for _, rec := range records {
				if rec.OutputRoot == outputRoot {
					filtered = append(filtered, rec)
				}
			}
			records = filtered
		}

		if len(records) == 0 {
			return mcp.NewToolResultText("Not transferred."), nil
		}
		return formatRecords(records)
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recorded transfers, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of transfers to return (default 20)"),
		),
	)
}

func historyHandler(ledger ports.TransferLedger) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 20)
		if limit <= 0 {
			return toolError(fmt.Errorf("limit must be positive"))
		}

		records, err := ledger.History(limit)
		if err != nil {
			return toolError(err)
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("No transfers recorded."), nil
		}
		return formatRecords(records)
	}
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Summarize the transfers recorded for one output root: totals, first and last transfer, per-year counts."),
		mcp.WithString("output_root",
			mcp.Description("Output root to summarize"),
			mcp.Required(),
		),
	)
}

func statsHandler(ledger ports.TransferLedger) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		outputRoot := req.GetString("output_root", "")
		if outputRoot == "" {
			return toolError(fmt.Errorf("output_root is required"))
		}

		stats, err := ledger.Stats(outputRoot)
		if err != nil {
			return toolError(err)
		}
		if stats.TotalTransfers == 0 {
			return mcp.NewToolResultText("No transfers recorded for " + outputRoot + "."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d transfers into %s\n", stats.TotalTransfers, stats.OutputRoot)
		fmt.Fprintf(&sb, "first: %s  last: %s\n",
			stats.FirstTransfer.Format(time.RFC3339), stats.LastTransfer.Format(time.RFC3339))
		for _, yc := range stats.ByYear {
			fmt.Fprintf(&sb, "%s  %d\n", yc.Year, yc.Count)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRecords(records []domain.TransferRecord) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&sb, "%s  %s -> %s\n",
			rec.TransferredAt.Format(time.RFC3339), rec.OriginalPath, rec.CopyPath)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
