package extract

// Test Plan for the Snapshot Index Extractor:
// - the $type key is skipped
// - display name falls back to the id, released to true, sort order to document position
// - output is sorted by SortOrder regardless of dictionary order
// - ties keep document order
// - companion descriptions are attached per id
// - a document without an Object dictionary yields no entries
// - companion files: missing -> "", malformed -> "", BOM-prefixed -> parsed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const monsterIndex = `{
  "$type": "RogueEssence.Data.EntryDataIndex, RogueEssence",
  "Object": {
    "$type": "System.Collections.Generic.Dictionary",
    "pikachu": {"Name": {"DefaultText": "Pikachu"}, "Released": true, "SortOrder": 25},
    "bulbasaur": {"Name": {"DefaultText": "Bulbasaur"}, "Released": true, "SortOrder": 1},
    "missingno": {"Released": false, "SortOrder": 0},
    "mew": {"Name": {"DefaultText": "Mew"}, "SortOrder": 151}
  }
}`

func TestExtractSnapshot_SortsAndDefaults(t *testing.T) {
	t.Parallel()

	entries := ExtractSnapshot([]byte(monsterIndex), "index.idx", nil)
	require.Len(t, entries, 4)

	ids := []string{entries[0].ID, entries[1].ID, entries[2].ID, entries[3].ID}
	assert.Equal(t, []string{"missingno", "bulbasaur", "pikachu", "mew"}, ids)

	assert.Equal(t, "missingno", entries[0].DisplayName, "name falls back to id")
	assert.True(t, entries[0].IsUnreleased)
	assert.False(t, entries[3].IsUnreleased, "released defaults to true")
	assert.Equal(t, 151, entries[3].SequenceIndex)
	assert.Equal(t, entries[2].DisplayName, entries[2].RawName)
	assert.Nil(t, entries[2].SourceLocation)
}

func TestExtractSnapshot_FallbackOrderIsDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := `{"Object": {"zeta": {}, "alpha": {}, "mid": {"SortOrder": 1}}}`
	entries := ExtractSnapshot([]byte(doc), "index.idx", nil)
	require.Len(t, entries, 3)

	// zeta -> position 0, alpha -> 1, mid -> explicit 1; stable sort keeps alpha before mid.
	assert.Equal(t, "zeta", entries[0].ID)
	assert.Equal(t, "alpha", entries[1].ID)
	assert.Equal(t, "mid", entries[2].ID)
}

func TestExtractSnapshot_Companion(t *testing.T) {
	t.Parallel()

	calls := map[string]bool{}
	entries := ExtractSnapshot([]byte(monsterIndex), "index.idx", func(id string) string {
		calls[id] = true
		if id == "pikachu" {
			return "Mouse Pokemon"
		}
		return ""
	})

	require.Len(t, entries, 4)
	assert.Len(t, calls, 4)
	for _, e := range entries {
		if e.ID == "pikachu" {
			assert.Equal(t, "Mouse Pokemon", e.Description)
		} else {
			assert.Empty(t, e.Description)
		}
	}
}

func TestExtractSnapshot_MissingObject(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractSnapshot([]byte(`{"Other": {}}`), "index.idx", nil))
	assert.Empty(t, ExtractSnapshot([]byte(`{"Object": []}`), "index.idx", nil))
	assert.Empty(t, ExtractSnapshot([]byte(`not json`), "index.idx", nil))
}

func TestCompanionReader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bom := "\xEF\xBB\xBF"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pikachu.json"),
		[]byte(bom+`{"Object": {"Title": {"DefaultText": "Mouse Pokemon"}}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"Object": {`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untitled.json"), []byte(`{"Object": {}}`), 0644))

	read := companionReader(dir, "Title")
	assert.Equal(t, "Mouse Pokemon", read("pikachu"))
	assert.Equal(t, "", read("broken"))
	assert.Equal(t, "", read("untitled"))
	assert.Equal(t, "", read("absent"))
	assert.Equal(t, "", read("../pikachu"))
}
