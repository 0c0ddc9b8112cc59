package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/pmdo-query/internal/catalog"
	"github.com/mvp-joe/pmdo-query/internal/config"
	"github.com/mvp-joe/pmdo-query/internal/extract"
	"github.com/mvp-joe/pmdo-query/internal/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig loads configuration with the command's --project-root bound
// above environment and file values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	v := viper.New()
	if flag := cmd.Flags().Lookup("project-root"); flag != nil {
		if err := v.BindPFlag("paths.project_root", flag); err != nil {
			return nil, fmt.Errorf("failed to bind --project-root: %w", err)
		}
	}

	opts := []config.Option{config.WithViper(v)}
	if cfgFile != "" {
		opts = append(opts, config.WithConfigFile(cfgFile))
	}

	cfg, err := config.NewLoader(wd, opts...).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Project root: %s\n", cfg.Paths.ProjectRoot)
	}
	return cfg, nil
}

// loadRegistry returns the configured registry override or the built-in one.
func loadRegistry(cfg *config.Config) (*catalog.Registry, error) {
	path := cfg.RegistryPath()
	if path == "" {
		return catalog.Default()
	}
	registry, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load category registry: %w", err)
	}
	return registry, nil
}

// newEngine builds a query engine from configuration.
func newEngine(cmd *cobra.Command) (*query.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	return query.NewEngine(registry, extract.NewExtractor(cfg.ExtractPaths()), nil, cfg.Limits()), nil
}
