package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verbose     bool
	projectRoot string
	jsonOutput  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pmdq",
	Short: "pmdq - query PMDO game data from the command line",
	Long: `pmdq reads the PMDO data generator sources and dump asset snapshots and
answers questions about them: search by name, browse a category, look up one
entry, read C# class documentation, and scaffold zone spawn entries.

The same queries are exposed to coding assistants over MCP with 'pmdq mcp'.

The project root is detected from the working directory (the nearest
directory holding PMDOData.sln or DataGenerator/) unless --project-root or
PMDQ_PATHS_PROJECT_ROOT is set.`,
	SilenceUsage:      true,
	PersistentPreRunE: initEnvironment,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <project root>/.pmdq/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (extraction diagnostics on stderr)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "PMDO data checkout (default: auto-detected)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
}

// initEnvironment loads .env from the working directory and routes
// diagnostics. Variables already set in the environment win over .env.
func initEnvironment(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// The MCP server always logs to stderr; query commands only when asked.
	if verbose || cmd.Name() == "mcp" {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
	return nil
}
