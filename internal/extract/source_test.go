package extract

// Test Plan for the Source Entry Extractor:
// - the three-branch ladder with guards and names on one line yields
//   Apple (released), Bolt Seed (unreleased), Old Boot (released)
// - multi-line branches pick up description, sprite, price
// - explicit fileName overrides the derived slug before and after the name
// - branches without a name (or with an empty name) are never emitted
// - lines before the first guard are ignored
// - escaped quotes in literals are resolved
// - entries come back in branch-index order even when the ladder is not
// - a custom index variable is honoured, other comparisons are not guards
// - the source location records file and guard line
// - fields assigned from non-literal expressions stay absent
// - empty name and description literals never clear earlier values
// - a branch index that does not fit an int closes the open record and
//   its body is skipped

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSource_InlineLadder(t *testing.T) {
	t.Parallel()

	src := `if (ii == 0) { x.Name = Ctor("Apple"); }
else if (ii == 1) { x.Name = Ctor("**Bolt Seed"); }
else if (ii == 2) { x.Name = Ctor("-Old Boot"); }
`
	entries := ExtractSource([]byte(src), "Items.cs", "ii")
	require.Len(t, entries, 3)

	assert.Equal(t, 0, entries[0].SequenceIndex)
	assert.Equal(t, "Apple", entries[0].DisplayName)
	assert.Equal(t, "apple", entries[0].ID)
	assert.False(t, entries[0].IsUnreleased)

	assert.Equal(t, 1, entries[1].SequenceIndex)
	assert.Equal(t, "Bolt Seed", entries[1].DisplayName)
	assert.Equal(t, "**Bolt Seed", entries[1].RawName)
	assert.True(t, entries[1].IsUnreleased)

	assert.Equal(t, 2, entries[2].SequenceIndex)
	assert.Equal(t, "Old Boot", entries[2].DisplayName)
	assert.Equal(t, "-Old Boot", entries[2].RawName)
	assert.False(t, entries[2].IsUnreleased)
}

func TestExtractSource_MultiLineBranches(t *testing.T) {
	t.Parallel()

	src := `public static (string, ItemData) GetItemData(int ii)
{
    ItemData item = new ItemData();
    item.Name = new LocalText("Ignored Header");
    if (ii == 0)
    {
        item.Name = new LocalText("**Empty");
    }
    else if (ii == 1)
    {
        item.Name = new LocalText("Oran Berry");
        item.Desc = new LocalText("A berry that restores \"10\" HP.");
        item.Sprite = "Berry_Blue";
        item.Price = 50;
    }
    else if (ii == 2)
    {
        string fileName = "food_apple";
        item.Name = new LocalText("Apple");
    }
    else if (ii == 3)
    {
        item.Name = new LocalText("Big Apple");
        fileName = "food_apple_big";
    }
    else if (ii == 4)
    {
        item.Sprite = "Unnamed";
    }
    else if (ii == 5)
    {
        item.Name = new LocalText("");
    }
    return (fileName, item);
}
`
	entries := ExtractSource([]byte(src), "DataGenerator/Data/ItemInfo.cs", "ii")
	require.Len(t, entries, 4)

	assert.Equal(t, "Empty", entries[0].DisplayName)
	assert.True(t, entries[0].IsUnreleased)

	berry := entries[1]
	assert.Equal(t, "Oran Berry", berry.DisplayName)
	assert.Equal(t, "oran_berry", berry.ID)
	assert.Equal(t, `A berry that restores "10" HP.`, berry.Description)
	assert.Equal(t, "Berry_Blue", berry.SpriteRef)
	require.NotNil(t, berry.Price)
	assert.Equal(t, 50, *berry.Price)
	require.NotNil(t, berry.SourceLocation)
	assert.Equal(t, "DataGenerator/Data/ItemInfo.cs", berry.SourceLocation.File)
	assert.Equal(t, 9, berry.SourceLocation.Line)

	assert.Equal(t, "food_apple", entries[2].ID, "fileName before Name wins")
	assert.Equal(t, "food_apple_big", entries[3].ID, "fileName after Name wins")
	assert.Nil(t, entries[2].Price)

	for _, e := range entries {
		assert.NotEmpty(t, e.DisplayName)
	}
}

func TestExtractSource_SortsByBranchIndex(t *testing.T) {
	t.Parallel()

	src := `if (ii == 7) { s.Name = new LocalText("Seven"); }
else if (ii == 2) { s.Name = new LocalText("Two"); }
else if (ii == 5) { s.Name = new LocalText("Five"); }
`
	entries := ExtractSource([]byte(src), "Skills.cs", "ii")
	require.Len(t, entries, 3)
	assert.Equal(t, []int{2, 5, 7}, []int{entries[0].SequenceIndex, entries[1].SequenceIndex, entries[2].SequenceIndex})
}

func TestExtractSource_CustomIndexVariable(t *testing.T) {
	t.Parallel()

	src := `if (idx == 0)
{
    z.Name = new LocalText("Tiny Woods");
    if (count == 3)
        z.Desc = new LocalText("Entry level dungeon");
}
else if (idx == 1)
{
    z.Name = new LocalText("Thunderwave Cave");
}
`
	entries := ExtractSource([]byte(src), "Zones.cs", "idx")
	require.Len(t, entries, 2)
	assert.Equal(t, "Tiny Woods", entries[0].DisplayName)
	assert.Equal(t, "Entry level dungeon", entries[0].Description)
	assert.Equal(t, "Thunderwave Cave", entries[1].DisplayName)
	assert.Equal(t, 1, entries[1].SequenceIndex)

	assert.Empty(t, ExtractSource([]byte(src), "Zones.cs", "ii"), "guards on another variable are not branches")
}

func TestExtractSource_NoGuards(t *testing.T) {
	t.Parallel()

	entries := ExtractSource([]byte(`x.Name = new LocalText("Orphan");`), "A.cs", "ii")
	assert.Empty(t, entries)
}

func TestExtractSource_WindowsLineEndings(t *testing.T) {
	t.Parallel()

	src := "if (ii == 0)\r\n{\r\n    x.Name = new LocalText(\"Apple\");\r\n}\r\n"
	entries := ExtractSource([]byte(src), "A.cs", "ii")
	require.Len(t, entries, 1)
	assert.Equal(t, "Apple", entries[0].DisplayName)
}

func TestExtractSource_NonLiteralAssignmentsLeaveFieldsAbsent(t *testing.T) {
	t.Parallel()

	src := `if (ii == 0)
{
    item.Name = new LocalText("Gold Ribbon");
    item.Desc = descriptions[ii];
    item.Price = basePrice * 2;
}
else if (ii == 1)
{
    item.Name = new LocalText(prefix + "Ribbon");
}
`
	entries := ExtractSource([]byte(src), "ItemInfo.cs", "ii")
	require.Len(t, entries, 1)
	assert.Equal(t, "Gold Ribbon", entries[0].DisplayName)
	assert.Empty(t, entries[0].Description)
	assert.Nil(t, entries[0].Price)
}

func TestExtractSource_EmptyLiteralsKeepEarlierValues(t *testing.T) {
	t.Parallel()

	src := `if (ii == 0)
{
    x.Name = new LocalText("Apple");
    evo.Name = new LocalText("");
}
else if (ii == 1)
{
    x.Name = new LocalText("Oran Berry");
    x.Desc = new LocalText("Restores 10 HP.");
    evo.Desc = new LocalText("");
}
`
	entries := ExtractSource([]byte(src), "ItemInfo.cs", "ii")
	require.Len(t, entries, 2)
	assert.Equal(t, "Apple", entries[0].DisplayName)
	assert.Equal(t, "apple", entries[0].ID)
	assert.Equal(t, "Oran Berry", entries[1].DisplayName)
	assert.Equal(t, "Restores 10 HP.", entries[1].Description)
}

func TestExtractSource_UnusableBranchIndexClosesOpenRecord(t *testing.T) {
	t.Parallel()

	src := `if (ii == 0)
{
    x.Name = new LocalText("Apple");
}
else if (ii == 99999999999999999999)
{
    x.Name = new LocalText("Huge");
    x.Desc = new LocalText("Belongs to huge.");
}
else if (ii == 2)
{
    x.Name = new LocalText("Big Apple");
}
`
	entries := ExtractSource([]byte(src), "ItemInfo.cs", "ii")
	require.Len(t, entries, 2)
	assert.Equal(t, "Apple", entries[0].DisplayName)
	assert.Empty(t, entries[0].Description)
	assert.Equal(t, 0, entries[0].SequenceIndex)
	assert.Equal(t, "Big Apple", entries[1].DisplayName)
	assert.Equal(t, 2, entries[1].SequenceIndex)
}
