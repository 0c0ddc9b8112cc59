package extract

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/mvp-joe/pmdo-query/internal/srcfile"
)

const (
	// snapshotIndexFile is the per-folder dictionary of finished records.
	snapshotIndexFile = "index.idx"

	// typeTagKey is the serializer's type annotation, not a record.
	typeTagKey = "$type"
)

// ExtractSnapshot reads the Object dictionary of a snapshot index and returns
// one entry per id, sorted ascending by sort order.
//
// companion, when non-nil, is called with each id and returns the entry's
// description; it is expected to swallow its own failures.
func ExtractSnapshot(data []byte, source string, companion func(id string) string) []Entry {
	obj, dataType, _, err := jsonparser.Get(data, "Object")
	if err != nil || dataType != jsonparser.Object {
		log.Printf("extract: invalid index structure in %s: missing Object dictionary", source)
		return nil
	}

	var entries []Entry
	position := 0
	err = jsonparser.ObjectEach(obj, func(key []byte, value []byte, _ jsonparser.ValueType, _ int) error {
		id := string(key)
		if id == typeTagKey {
			return nil
		}
		pos := position
		position++

		name, err := jsonparser.GetString(value, "Name", "DefaultText")
		if err != nil || name == "" {
			name = id
		}
		released, err := jsonparser.GetBoolean(value, "Released")
		if err != nil {
			released = true
		}
		sortOrder, err := jsonparser.GetInt(value, "SortOrder")
		if err != nil {
			sortOrder = int64(pos)
		}

		if name == "" {
			return nil
		}

		entry := Entry{
			SequenceIndex: int(sortOrder),
			ID:            id,
			DisplayName:   name,
			RawName:       name,
			IsUnreleased:  !released,
		}
		if companion != nil {
			entry.Description = companion(id)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		// Keep whatever was read before the malformed tail.
		log.Printf("extract: error parsing %s: %v", source, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SequenceIndex < entries[j].SequenceIndex
	})
	return entries
}

// companionReader returns a description lookup over <dir>/<id>.json files,
// reading Object.<field>.DefaultText. Missing files are an expected case and
// produce an empty description silently; malformed ones are logged.
func companionReader(dir, field string) func(id string) string {
	return func(id string) string {
		if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
			return ""
		}

		path := filepath.Join(dir, id+".json")
		data, err := srcfile.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("extract: cannot read companion %s: %v", path, err)
			}
			return ""
		}

		text, err := jsonparser.GetString(data, "Object", field, "DefaultText")
		if err != nil {
			if err != jsonparser.KeyPathNotFoundError {
				log.Printf("extract: malformed companion %s: %v", path, err)
			}
			return ""
		}
		return text
	}
}
