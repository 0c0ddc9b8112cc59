package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with the stock layout and limits
// - Load() uses defaults when no config file exists
// - Load() loads from .pmdq/config.yml and .pmdq/config.yaml
// - Load() merges a partial config file with defaults
// - Environment variables override config file values and defaults
// - a viper flag binding overrides everything else
// - an explicit config file must exist
// - Load() returns error for malformed YAML and invalid values
// - the project root is detected from a nested directory
// - ExtractPaths() and RegistryPath() resolve relative paths against the root
// - Validate() rejects empty paths and bad limits, collecting every problem

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, ConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// newProjectDir creates a temp checkout with a root marker.
func newProjectDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "DataGenerator", "Data"), 0755))
	return root
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, filepath.Join("DataGenerator", "Data"), cfg.Paths.DataDir)
	assert.Equal(t, filepath.Join("DumpAsset", "Data"), cfg.Paths.DumpAssetDir)
	assert.Empty(t, cfg.Paths.Registry)
	assert.Equal(t, LimitConfig{DefaultLimit: 20, MaxLimit: 50}, cfg.Search)
	assert.Equal(t, LimitConfig{DefaultLimit: 50, MaxLimit: 100}, cfg.List)

	// Only the project root is left for the loader
	cfg.Paths.ProjectRoot = "/pmdo"
	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Paths.ProjectRoot)
	assert.Equal(t, Default().Search, cfg.Search)
	assert.Equal(t, Default().List, cfg.List)
}

func TestLoad_LoadsFromConfigYml(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yml", `
paths:
  data_dir: Gen/Data
  dump_asset_dir: Assets
  registry: categories.yaml
search:
  default_limit: 10
  max_limit: 30
list:
  default_limit: 25
  max_limit: 75
`)

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, "Gen/Data", cfg.Paths.DataDir)
	assert.Equal(t, "Assets", cfg.Paths.DumpAssetDir)
	assert.Equal(t, filepath.Join(root, "categories.yaml"), cfg.RegistryPath())
	assert.Equal(t, LimitConfig{DefaultLimit: 10, MaxLimit: 30}, cfg.Search)
	assert.Equal(t, LimitConfig{DefaultLimit: 25, MaxLimit: 75}, cfg.List)
}

func TestLoad_LoadsFromConfigYaml(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yaml", `
search:
  max_limit: 40
`)

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Search.MaxLimit)
}

func TestLoad_MergesConfigWithDefaults(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yml", `
list:
  max_limit: 200
`)

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.List.MaxLimit)
	assert.Equal(t, 50, cfg.List.DefaultLimit)
	assert.Equal(t, Default().Paths.DataDir, cfg.Paths.DataDir)
}

func TestLoad_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yml", `
search:
  default_limit: 5
  max_limit: 10
`)
	t.Setenv("PMDQ_SEARCH_MAX_LIMIT", "15")
	t.Setenv("PMDQ_PATHS_DUMP_ASSET_DIR", "/srv/dump")

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Search.MaxLimit)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
	assert.Equal(t, "/srv/dump", cfg.ExtractPaths().DumpAssetDir)
}

func TestLoad_EnvironmentProjectRoot(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yml", `
list:
  default_limit: 7
`)
	t.Setenv("PMDQ_PATHS_PROJECT_ROOT", root)

	// Starting elsewhere, the env root decides where the config file is read
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Paths.ProjectRoot)
	assert.Equal(t, 7, cfg.List.DefaultLimit)
}

func TestLoad_BoundViperValueWins(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	root := newProjectDir(t)
	other := newProjectDir(t)
	t.Setenv("PMDQ_PATHS_PROJECT_ROOT", other)

	v := viper.New()
	v.Set("paths.project_root", root)

	cfg, err := NewLoader(t.TempDir(), WithViper(v)).Load()
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Paths.ProjectRoot)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  default_limit: 3\n"), 0644))

	cfg, err := NewLoader(root, WithConfigFile(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Search.DefaultLimit)

	_, err = NewLoader(root, WithConfigFile(filepath.Join(root, "missing.yml"))).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yml", "search: [unclosed\n")

	_, err := NewLoader(root).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	root := newProjectDir(t)
	writeConfig(t, root, "config.yml", `
search:
  default_limit: 60
  max_limit: 50
`)

	_, err := NewLoader(root).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLimit)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestDetectProjectRoot(t *testing.T) {
	t.Parallel()

	t.Run("data generator marker", func(t *testing.T) {
		root := newProjectDir(t)
		nested := filepath.Join(root, "DataGenerator", "Data", "Zones")
		require.NoError(t, os.MkdirAll(nested, 0755))

		got, found := DetectProjectRoot(nested)
		assert.True(t, found)
		assert.Equal(t, root, got)
	})

	t.Run("solution marker", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "PMDOData.sln"), nil, 0644))
		nested := filepath.Join(root, "DumpAsset")
		require.NoError(t, os.MkdirAll(nested, 0755))

		got, found := DetectProjectRoot(nested)
		assert.True(t, found)
		assert.Equal(t, root, got)
	})

	t.Run("load from nested directory", func(t *testing.T) {
		root := newProjectDir(t)
		cfg, err := NewLoader(filepath.Join(root, "DataGenerator")).Load()
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Paths.ProjectRoot)
	})
}

func TestConfig_ResolvesPaths(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.ProjectRoot = "/pmdo"
	cfg.Paths.DumpAssetDir = "/elsewhere/dump"

	paths := cfg.ExtractPaths()
	assert.Equal(t, "/pmdo", paths.ProjectRoot)
	assert.Equal(t, filepath.Join("/pmdo", "DataGenerator", "Data"), paths.DataDir)
	assert.Equal(t, "/elsewhere/dump", paths.DumpAssetDir)
	assert.Empty(t, cfg.RegistryPath())

	limits := cfg.Limits()
	assert.Equal(t, 20, limits.SearchDefault)
	assert.Equal(t, 100, limits.ListMax)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := Default()
		cfg.Paths.ProjectRoot = "/pmdo"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{"valid", func(*Config) {}, nil, ""},
		{"empty project root", func(c *Config) { c.Paths.ProjectRoot = " " }, ErrEmptyPath, "project_root is required"},
		{"empty data dir", func(c *Config) { c.Paths.DataDir = "" }, ErrEmptyPath, "data_dir is required"},
		{"zero default limit", func(c *Config) { c.Search.DefaultLimit = 0 }, ErrInvalidLimit, "search.default_limit must be positive"},
		{"negative max limit", func(c *Config) { c.List.MaxLimit = -1 }, ErrInvalidLimit, "list.max_limit must be positive"},
		{"default above max", func(c *Config) { c.List.DefaultLimit = 150 }, ErrInvalidLimit, "list.default_limit (150) exceeds list.max_limit (100)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Search.MaxLimit = 0
	cfg.List.DefaultLimit = -5

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "project_root is required")
	assert.Contains(t, err.Error(), "search.max_limit must be positive")
	assert.Contains(t, err.Error(), "list.default_limit must be positive")
}
