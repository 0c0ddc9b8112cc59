package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcputils "github.com/mvp-joe/pmdo-query/internal/mcp-utils"
	"github.com/mvp-joe/pmdo-query/internal/scaffold"
)

// Output formats every tool accepts.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

type searchArgs struct {
	Query             string   `json:"query"`
	Category          string   `json:"category"`
	Categories        []string `json:"categories"`
	Limit             int      `json:"limit"`
	IncludeUnreleased bool     `json:"include_unreleased"`
	Format            string   `json:"format"`
}

// categories merges the single and list forms of the category filter.
func (a searchArgs) categories() []string {
	if a.Category == "" {
		return a.Categories
	}
	return append([]string{a.Category}, a.Categories...)
}

type listArgs struct {
	Category          string `json:"category"`
	Limit             int    `json:"limit"`
	Offset            int    `json:"offset"`
	IncludeUnreleased bool   `json:"include_unreleased"`
	Format            string `json:"format"`
}

type entryArgs struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Format   string `json:"format"`
}

type categoryArgs struct {
	Category string `json:"category"`
	Format   string `json:"format"`
}

type classArgs struct {
	ClassName string `json:"class_name"`
	Format    string `json:"format"`
}

type formatArgs struct {
	Format string `json:"format"`
}

type spawnArgs struct {
	scaffold.SpawnRequest `json:",squash"`
	Format                string `json:"format"`
}

type itemSpawnArgs struct {
	scaffold.ItemSpawnRequest `json:",squash"`
	Format                    string `json:"format"`
}

// bindArgs decodes request arguments onto target, which may already hold
// defaults. The returned result is non-nil when the arguments are unusable.
func bindArgs[T any](request mcp.CallToolRequest, target *T) *mcp.CallToolResult {
	if _, ok := request.GetRawArguments().(map[string]any); !ok {
		return mcp.NewToolResultError("invalid arguments format")
	}
	if err := mcputils.CoerceBindArguments(request, target); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err))
	}
	return nil
}

// requireArg reports a missing required string argument.
func requireArg(value, name string) *mcp.CallToolResult {
	if value == "" {
		return mcp.NewToolResultError(name + " parameter is required")
	}
	return nil
}

func checkFormat(format string) *mcp.CallToolResult {
	switch format {
	case "", FormatMarkdown, FormatJSON:
		return nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q (valid: %s, %s)", format, FormatMarkdown, FormatJSON))
	}
}
