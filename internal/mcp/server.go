package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/pmdo-query/internal/scaffold"
)

// ServerName is the name reported to MCP clients.
const ServerName = "pmdo-data"

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	querier Querier
	metrics *ToolMetrics
	mcp     *server.MCPServer
}

// NewMCPServer creates a server with every pmdo tool registered.
func NewMCPServer(q Querier, version string) (*MCPServer, error) {
	if q == nil {
		return nil, fmt.Errorf("querier is required")
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	metrics := NewToolMetrics()
	gen := scaffold.NewGenerator(q)

	AddSearchTool(mcpServer, q, metrics)
	AddListDataTool(mcpServer, q, metrics)
	AddGetEntryTool(mcpServer, q, metrics)
	AddListClassesTool(mcpServer, q, metrics)
	AddGetClassDocsTool(mcpServer, q, metrics)
	AddStatsTool(mcpServer, q, metrics)
	AddScaffoldSpawnTool(mcpServer, gen, metrics)
	AddScaffoldItemSpawnTool(mcpServer, gen, metrics)

	return &MCPServer{
		querier: q,
		metrics: metrics,
		mcp:     mcpServer,
	}, nil
}

// Metrics returns the call metrics collected so far.
func (s *MCPServer) Metrics() MetricsSnapshot {
	return s.metrics.GetMetrics()
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.logSummary()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio (categories: %v)...", s.querier.Registry().Names())
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MCPServer) logSummary() {
	m := s.metrics.GetMetrics()
	log.Printf("MCP server handled %d calls (%d tool errors, %d failures)", m.TotalCalls, m.ToolErrors, m.FailedCalls)
	for tool, n := range m.CallsByTool {
		log.Printf("  %s: %d", tool, n)
	}
}
