package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "phototransfer/internal/adapters/mcp"
	"phototransfer/internal/adapters/sqlite"
	"phototransfer/internal/config"
)

func main() {
	databaseFlag := flag.String("database", config.DatabasePath(), "path to the transfer ledger database")
	flag.Parse()

	ledger := sqlite.NewLedger()
	if err := ledger.Open(*databaseFlag); err != nil {
		log.Fatalf("phototransfer-mcp: %v", err)
	}
	defer ledger.Close()

	mcpServer := server.NewMCPServer(
		"phototransfer-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, ledger)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("phototransfer-mcp: %v", err)
	}
}
