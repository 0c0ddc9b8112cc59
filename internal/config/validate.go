package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPath indicates a required path is missing
	ErrEmptyPath = errors.New("empty path")

	// ErrInvalidLimit indicates a non-positive or inconsistent result limit
	ErrInvalidLimit = errors.New("invalid limit")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}
	if err := validateLimits("search", &cfg.Search); err != nil {
		errs = append(errs, err)
	}
	if err := validateLimits("list", &cfg.List); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.ProjectRoot) == "" {
		errs = append(errs, fmt.Errorf("%w: project_root is required", ErrEmptyPath))
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, fmt.Errorf("%w: data_dir is required", ErrEmptyPath))
	}
	if strings.TrimSpace(cfg.DumpAssetDir) == "" {
		errs = append(errs, fmt.Errorf("%w: dump_asset_dir is required", ErrEmptyPath))
	}
	// Missing directories are not an error: extraction degrades to fewer entries.

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLimits(section string, cfg *LimitConfig) error {
	var errs []error

	if cfg.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s.default_limit must be positive, got %d", ErrInvalidLimit, section, cfg.DefaultLimit))
	}
	if cfg.MaxLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s.max_limit must be positive, got %d", ErrInvalidLimit, section, cfg.MaxLimit))
	}
	if cfg.DefaultLimit > 0 && cfg.MaxLimit > 0 && cfg.DefaultLimit > cfg.MaxLimit {
		errs = append(errs, fmt.Errorf("%w: %s.default_limit (%d) exceeds %s.max_limit (%d)", ErrInvalidLimit, section, cfg.DefaultLimit, section, cfg.MaxLimit))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
