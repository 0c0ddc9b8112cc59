package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ResolveFiles expands the category's file list against dataDir.
//
// Plain entries are returned as-is (joined with dataDir) even when the file
// does not exist, so extractors can report them as missing. Glob entries
// expand to the matching files in lexical order; a glob matching nothing
// contributes nothing.
func (c Category) ResolveFiles(dataDir string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, pattern := range c.Files {
		pattern = filepath.ToSlash(pattern)
		if !isGlob(pattern) {
			add(filepath.Join(dataDir, filepath.FromSlash(pattern)))
			continue
		}

		matches, err := expandGlob(dataDir, pattern)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", c.Name, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob walks dataDir and returns files whose slash-separated relative
// path matches pattern.
func expandGlob(dataDir, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	var matches []string
	err = filepath.Walk(dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		if g.Match(filepath.ToSlash(relPath)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}

	sort.Strings(matches)
	return matches, nil
}
