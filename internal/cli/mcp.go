package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/pmdo-query/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for PMDO game data",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants search PMDO game data, read C# class documentation and scaffold
zone spawn entries.

The MCP server:
- Re-reads generator sources and snapshots on every call (no index to build)
- Provides the pmdo_* tools (search, list, lookup, classes, stats, scaffold)
- Communicates via stdio (standard MCP transport)

Example:
  pmdq mcp --project-root ~/src/PMDOData`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "PMDO Data MCP Server %s\n", Version)
	fmt.Fprintf(os.Stderr, "Categories: %v\n\n", engine.Registry().Names())

	server, err := mcp.NewMCPServer(engine, Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Serve (blocks until shutdown)
	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
