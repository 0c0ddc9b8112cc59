package extract

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// literal matches a double-quoted C# string literal body, escapes included.
const literal = `"((?:[^"\\]|\\.)*)"`

// ctorCall matches `[new] Type(` with an optional namespace-qualified type.
const ctorCall = `(?:new\s+)?[A-Za-z_][\w.]*\s*\(\s*`

var (
	nameAssign     = regexp.MustCompile(`\.Name\s*=\s*` + ctorCall + literal + `\s*\)`)
	descAssign     = regexp.MustCompile(`\.Desc\s*=\s*` + ctorCall + literal + `\s*\)`)
	spriteAssign   = regexp.MustCompile(`\.Sprite\s*=\s*` + literal)
	priceAssign    = regexp.MustCompile(`\.Price\s*=\s*(\d+)`)
	fileNameAssign = regexp.MustCompile(`\bfileName\s*=\s*` + literal)
)

// guardPattern builds the branch-guard recognizer for the given running
// integer, e.g. `if (ii == 12)` and `else if (ii == 12)`.
func guardPattern(indexVar string) *regexp.Regexp {
	return regexp.MustCompile(`\bif\s*\(\s*` + regexp.QuoteMeta(indexVar) + `\s*==\s*(\d+)\s*\)`)
}

// openRecord is the single piece of extractor state: the record currently
// being filled in by field assignments.
type openRecord struct {
	entry      Entry
	explicitID string
}

func (r *openRecord) setName(raw string) {
	r.entry.RawName = raw
	r.entry.DisplayName, r.entry.IsUnreleased = ParseName(raw)
	r.entry.ID = Slug(r.entry.DisplayName)
	if r.explicitID != "" {
		r.entry.ID = r.explicitID
	}
}

func (r *openRecord) setFileName(id string) {
	r.explicitID = id
	r.entry.ID = id
}

// apply runs every field recognizer over one span of source text.
func (r *openRecord) apply(text string) {
	// Empty literals never clear a field already set in this branch.
	if m := nameAssign.FindStringSubmatch(text); m != nil && m[1] != "" {
		r.setName(unescape(m[1]))
	}
	if m := descAssign.FindStringSubmatch(text); m != nil && m[1] != "" {
		r.entry.Description = unescape(m[1])
	}
	if m := spriteAssign.FindStringSubmatch(text); m != nil {
		r.entry.SpriteRef = unescape(m[1])
	}
	if m := priceAssign.FindStringSubmatch(text); m != nil {
		if price, err := strconv.Atoi(m[1]); err == nil {
			r.entry.Price = &price
		}
	}
	if m := fileNameAssign.FindStringSubmatch(text); m != nil && m[1] != "" {
		r.setFileName(unescape(m[1]))
	}
}

// ExtractSource replays the generator's index-keyed branch ladder over src
// and returns the records it would build, in branch-index order.
//
// file is recorded as the entry's source location. indexVar names the
// running integer compared in branch guards.
func ExtractSource(src []byte, file, indexVar string) []Entry {
	guard := guardPattern(indexVar)

	var (
		entries []Entry
		current *openRecord
	)

	closeRecord := func() {
		if current != nil && current.entry.DisplayName != "" {
			entries = append(entries, current.entry)
		}
		current = nil
	}

	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lineNo := i + 1

		guards := guard.FindAllStringSubmatchIndex(line, -1)
		if len(guards) == 0 {
			if current != nil {
				current.apply(line)
			}
			continue
		}

		// Text ahead of the first guard still belongs to the open record.
		if current != nil {
			current.apply(line[:guards[0][0]])
		}

		for g, loc := range guards {
			index, err := strconv.Atoi(line[loc[2]:loc[3]])
			if err != nil {
				log.Printf("extract: %s:%d: unusable branch index %q: %v", file, lineNo, line[loc[2]:loc[3]], err)
				closeRecord()
				continue
			}

			closeRecord()
			current = &openRecord{entry: Entry{
				SequenceIndex:  index,
				SourceLocation: &Location{File: file, Line: lineNo},
			}}

			end := len(line)
			if g+1 < len(guards) {
				end = guards[g+1][0]
			}
			current.apply(line[loc[1]:end])
		}
	}
	closeRecord()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SequenceIndex < entries[j].SequenceIndex
	})
	return entries
}

// unescape resolves C# escape sequences in a literal body, falling back to
// the raw text when the body is not a valid quoted string.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	if out, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return out
	}
	return s
}
