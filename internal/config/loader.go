package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigDir is the per-project settings directory under the project root.
const ConfigDir = ".pmdq"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PMDQ"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables → bound flags
	Load() (*Config, error)
}

// Option customizes a loader.
type Option func(*loader)

// WithConfigFile reads the given file instead of searching .pmdq/.
func WithConfigFile(path string) Option {
	return func(l *loader) {
		l.configFile = path
	}
}

// WithViper loads through v, so flags already bound on it take precedence.
func WithViper(v *viper.Viper) Option {
	return func(l *loader) {
		l.v = v
	}
}

type loader struct {
	startDir   string
	configFile string
	v          *viper.Viper
}

// NewLoader creates a loader that detects the project root from startDir.
func NewLoader(startDir string, opts ...Option) Loader {
	l := &loader{startDir: startDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Flags bound on the viper instance passed via WithViper
// 2. Environment variables (PMDQ_*)
// 3. Config file (.pmdq/config.yml, .pmdq/config.yaml or WithConfigFile)
// 4. Default values
func (l *loader) Load() (*Config, error) {
	v := l.v
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., PMDQ_PATHS_DATA_DIR)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVars(v)

	root := v.GetString("paths.project_root")
	if root == "" {
		root, _ = DetectProjectRoot(l.startDir)
	}
	setDefaults(v, root)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(root, ConfigDir))
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars.
		// An explicit --config file must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if !filepath.IsAbs(cfg.Paths.ProjectRoot) {
		if abs, err := filepath.Abs(cfg.Paths.ProjectRoot); err == nil {
			cfg.Paths.ProjectRoot = abs
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("paths.project_root")
	v.BindEnv("paths.data_dir")
	v.BindEnv("paths.dump_asset_dir")
	v.BindEnv("paths.registry")

	v.BindEnv("search.default_limit")
	v.BindEnv("search.max_limit")
	v.BindEnv("list.default_limit")
	v.BindEnv("list.max_limit")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper, root string) {
	defaults := Default()

	v.SetDefault("paths.project_root", root)
	v.SetDefault("paths.data_dir", defaults.Paths.DataDir)
	v.SetDefault("paths.dump_asset_dir", defaults.Paths.DumpAssetDir)
	v.SetDefault("paths.registry", defaults.Paths.Registry)

	v.SetDefault("search.default_limit", defaults.Search.DefaultLimit)
	v.SetDefault("search.max_limit", defaults.Search.MaxLimit)
	v.SetDefault("list.default_limit", defaults.List.DefaultLimit)
	v.SetDefault("list.max_limit", defaults.List.MaxLimit)
}
