package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mvp-joe/pmdo-query/internal/catalog"
	"github.com/mvp-joe/pmdo-query/internal/srcfile"
)

// Paths locates the corpus on disk.
type Paths struct {
	ProjectRoot  string // used to shorten source locations
	DataDir      string // generator source root (DataGenerator/Data)
	DumpAssetDir string // snapshot root (DumpAsset/Data)
}

// Extractor turns a category into its entry list. It holds only read-only
// paths; every call re-reads its inputs.
type Extractor struct {
	paths Paths
}

// NewExtractor creates an extractor rooted at the given paths.
func NewExtractor(paths Paths) *Extractor {
	return &Extractor{paths: paths}
}

// Paths returns the corpus locations this extractor reads.
func (x *Extractor) Paths() Paths {
	return x.paths
}

// Entries dispatches on the category's distribution mode. Missing or
// malformed inputs degrade to fewer entries; errors are only returned for a
// cancelled context or a mode this extractor does not know.
func (x *Extractor) Entries(ctx context.Context, cat catalog.Category) ([]Entry, error) {
	switch cat.Mode {
	case catalog.ModeSource:
		return x.sourceEntries(ctx, cat)
	case catalog.ModeSnapshot:
		return x.snapshotEntries(ctx, cat)
	default:
		return nil, fmt.Errorf("category %s: unsupported mode %q", cat.Name, cat.Mode)
	}
}

func (x *Extractor) sourceEntries(ctx context.Context, cat catalog.Category) ([]Entry, error) {
	files, err := cat.ResolveFiles(x.paths.DataDir)
	if err != nil {
		log.Printf("extract: %v", err)
		return nil, nil
	}

	var entries []Entry
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := srcfile.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("extract: source file not found: %s", path)
			} else {
				log.Printf("extract: %v", err)
			}
			continue
		}

		entries = append(entries, ExtractSource(src, x.Relative(path), cat.IndexVar)...)
	}
	return entries, nil
}

func (x *Extractor) snapshotEntries(ctx context.Context, cat catalog.Category) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folder := filepath.Join(x.paths.DumpAssetDir, cat.Folder)
	indexPath := filepath.Join(folder, snapshotIndexFile)

	data, err := srcfile.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("extract: index file not found: %s", indexPath)
		} else {
			log.Printf("extract: %v", err)
		}
		return nil, nil
	}

	var companion func(string) string
	if cat.Companion != nil {
		companion = companionReader(folder, cat.Companion.Field)
	}
	return ExtractSnapshot(data, indexPath, companion), nil
}

// Relative shortens path against the project root for display.
func (x *Extractor) Relative(path string) string {
	if x.paths.ProjectRoot == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(x.paths.ProjectRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
