package config

import (
	"os"
	"path/filepath"
)

// Markers that identify the root of a game data checkout.
var rootMarkers = []string{
	"PMDOData.sln",
	"DataGenerator",
}

// DetectProjectRoot walks up from start to the nearest directory holding one
// of the root markers. It returns start (made absolute) and false when none
// is found.
func DetectProjectRoot(start string) (string, bool) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start, false
	}

	dir := abs
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, false
		}
		dir = parent
	}
}
