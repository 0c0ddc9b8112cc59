package catalog

// Test Plan for Category Registry:
// - Default() loads the embedded registry in declared order
// - snapshot categories carry folder and companion settings
// - source categories default IndexVar to "ii"
// - Parse() rejects unknown modes, duplicates, missing folders, empty documents
// - Lookup() reports ErrUnknownCategory with the valid names
// - ResolveFiles() joins plain entries and expands globs in lexical order

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedRegistry(t *testing.T) {
	t.Parallel()

	reg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"monsters", "items", "skills", "zones", "intrinsics", "statuses", "elements"}, reg.Names())

	monsters, ok := reg.Get("monsters")
	require.True(t, ok)
	assert.Equal(t, ModeSnapshot, monsters.Mode)
	assert.Equal(t, "Monster", monsters.Folder)
	require.NotNil(t, monsters.Companion)
	assert.Equal(t, "Title", monsters.Companion.Field)

	skills, ok := reg.Get("skills")
	require.True(t, ok)
	assert.Equal(t, ModeSource, skills.Mode)
	assert.Equal(t, DefaultIndexVar, skills.IndexVar)
	assert.Len(t, skills.Files, 3)
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown mode", "categories:\n  - name: a\n    mode: binary\n    files: [A.cs]\n"},
		{"duplicate", "categories:\n  - name: a\n    mode: source\n    files: [A.cs]\n  - name: a\n    mode: source\n    files: [B.cs]\n"},
		{"snapshot without folder", "categories:\n  - name: a\n    mode: snapshot\n"},
		{"source without files", "categories:\n  - name: a\n    mode: source\n"},
		{"empty", "categories: []\n"},
		{"malformed yaml", "categories: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRegistry)
		})
	}
}

func TestLookup_UnknownCategory(t *testing.T) {
	t.Parallel()

	reg, err := Parse([]byte("categories:\n  - name: berries\n    mode: source\n    files: [Berry.cs]\n"))
	require.NoError(t, err)

	_, err = reg.Lookup("seeds")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), "berries")
}

func TestResolveFiles_PlainAndGlob(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	zones := filepath.Join(dataDir, "Zones")
	require.NoError(t, os.MkdirAll(zones, 0755))
	for _, name := range []string{"ZoneInfoRogue.cs", "ZoneInfoBase.cs", "Other.cs"} {
		require.NoError(t, os.WriteFile(filepath.Join(zones, name), []byte("// zone"), 0644))
	}

	cat := Category{
		Name:  "zones",
		Mode:  ModeSource,
		Files: []string{"Zones/ZoneInfo.cs", "Zones/ZoneInfo*.cs", "Zones/ZoneInfoBase.cs"},
	}

	files, err := cat.ResolveFiles(dataDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(zones, "ZoneInfo.cs"),
		filepath.Join(zones, "ZoneInfoBase.cs"),
		filepath.Join(zones, "ZoneInfoRogue.cs"),
	}, files)
}

func TestResolveFiles_MissingDataDir(t *testing.T) {
	t.Parallel()

	cat := Category{Name: "zones", Mode: ModeSource, Files: []string{"Zones/*.cs"}}
	files, err := cat.ResolveFiles(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
