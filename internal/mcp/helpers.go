package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/pmdo-query/internal/query"
)

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// respond renders a successful result in the requested format.
func respond(format string, response any, markdown func() string) (*mcp.CallToolResult, error) {
	if format == FormatJSON {
		return marshalToolResponse(response)
	}
	return mcp.NewToolResultText(markdown()), nil
}

// failure maps an operation error onto the MCP result. Caller-fixable errors
// become tool errors the client can read; anything else (grammar failure,
// cancellation) is returned as a protocol error.
func failure(err error) (*mcp.CallToolResult, error) {
	if query.IsUserError(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// withCallLog tags each call with a request id in the operator log and
// records its outcome.
func withCallLog(tool string, metrics *ToolMetrics, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		start := time.Now()
		log.Printf("mcp: [%s] %s started", id, tool)

		result, err := next(ctx, request)

		elapsed := time.Since(start)
		toolError := result != nil && result.IsError
		switch {
		case err != nil:
			log.Printf("mcp: [%s] %s failed after %s: %v", id, tool, elapsed, err)
		case toolError:
			log.Printf("mcp: [%s] %s returned a tool error after %s", id, tool, elapsed)
		default:
			log.Printf("mcp: [%s] %s finished in %s", id, tool, elapsed)
		}
		if metrics != nil {
			metrics.RecordCall(tool, elapsed, toolError, err)
		}
		return result, err
	}
}
