// Package config loads pmdq settings from .pmdq/config.yml under the project
// root, with PMDQ_* environment variables taking precedence.
//
// Priority (highest to lowest):
//  1. Command line flags bound into the loader's viper instance
//  2. Environment variables (PMDQ_PATHS_DATA_DIR, PMDQ_SEARCH_MAX_LIMIT, ...)
//  3. Config file (.pmdq/config.yml or .pmdq/config.yaml, or --config)
//  4. Built-in defaults
//
// Relative paths in the loaded configuration are resolved against the
// project root, which is auto-detected when not set explicitly.
package config

import (
	"path/filepath"

	"github.com/mvp-joe/pmdo-query/internal/extract"
	"github.com/mvp-joe/pmdo-query/internal/query"
)

// Config represents the complete pmdq configuration.
type Config struct {
	Paths  PathsConfig `yaml:"paths" mapstructure:"paths"`
	Search LimitConfig `yaml:"search" mapstructure:"search"`
	List   LimitConfig `yaml:"list" mapstructure:"list"`
}

// PathsConfig locates the game data checkout.
type PathsConfig struct {
	ProjectRoot  string `yaml:"project_root" mapstructure:"project_root"`
	DataDir      string `yaml:"data_dir" mapstructure:"data_dir"`             // generator sources
	DumpAssetDir string `yaml:"dump_asset_dir" mapstructure:"dump_asset_dir"` // snapshot indexes
	Registry     string `yaml:"registry" mapstructure:"registry"`             // optional category registry override
}

// LimitConfig bounds how many results one call returns.
type LimitConfig struct {
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
	MaxLimit     int `yaml:"max_limit" mapstructure:"max_limit"`
}

// Default returns a configuration with the stock layout and limits. The
// project root is left empty for the loader to detect.
func Default() *Config {
	limits := query.DefaultLimits()
	return &Config{
		Paths: PathsConfig{
			DataDir:      filepath.Join("DataGenerator", "Data"),
			DumpAssetDir: filepath.Join("DumpAsset", "Data"),
		},
		Search: LimitConfig{
			DefaultLimit: limits.SearchDefault,
			MaxLimit:     limits.SearchMax,
		},
		List: LimitConfig{
			DefaultLimit: limits.ListDefault,
			MaxLimit:     limits.ListMax,
		},
	}
}

// ExtractPaths returns the corpus locations for the extractor.
func (c *Config) ExtractPaths() extract.Paths {
	return extract.Paths{
		ProjectRoot:  c.Paths.ProjectRoot,
		DataDir:      c.resolve(c.Paths.DataDir),
		DumpAssetDir: c.resolve(c.Paths.DumpAssetDir),
	}
}

// RegistryPath returns the registry override, or "" for the built-in one.
func (c *Config) RegistryPath() string {
	if c.Paths.Registry == "" {
		return ""
	}
	return c.resolve(c.Paths.Registry)
}

// Limits returns the query result caps.
func (c *Config) Limits() query.Limits {
	return query.Limits{
		SearchDefault: c.Search.DefaultLimit,
		SearchMax:     c.Search.MaxLimit,
		ListDefault:   c.List.DefaultLimit,
		ListMax:       c.List.MaxLimit,
	}
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Paths.ProjectRoot, path)
}
