package query

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mvp-joe/pmdo-query/internal/catalog"
	"github.com/mvp-joe/pmdo-query/internal/classdoc"
	"github.com/mvp-joe/pmdo-query/internal/extract"
	"golang.org/x/sync/errgroup"
)

// Limits bounds the page sizes callers may ask for.
type Limits struct {
	SearchDefault int
	SearchMax     int
	ListDefault   int
	ListMax       int
}

// DefaultLimits returns the stock result caps.
func DefaultLimits() Limits {
	return Limits{
		SearchDefault: 20,
		SearchMax:     50,
		ListDefault:   50,
		ListMax:       100,
	}
}

// Engine answers search, listing, lookup and class documentation queries.
// It holds only read-only configuration; every call re-extracts its inputs.
type Engine struct {
	registry  *catalog.Registry
	extractor *extract.Extractor
	classes   *classdoc.Indexer
	limits    Limits
}

// NewEngine wires an engine over a registry and corpus. A nil indexer uses
// the shared C# grammar; zero limits fall back to DefaultLimits.
func NewEngine(registry *catalog.Registry, extractor *extract.Extractor, classes *classdoc.Indexer, limits Limits) *Engine {
	if classes == nil {
		classes = classdoc.NewIndexer()
	}
	def := DefaultLimits()
	if limits.SearchDefault <= 0 {
		limits.SearchDefault = def.SearchDefault
	}
	if limits.SearchMax <= 0 {
		limits.SearchMax = def.SearchMax
	}
	if limits.ListDefault <= 0 {
		limits.ListDefault = def.ListDefault
	}
	if limits.ListMax <= 0 {
		limits.ListMax = def.ListMax
	}
	return &Engine{registry: registry, extractor: extractor, classes: classes, limits: limits}
}

// Registry returns the categories this engine serves.
func (e *Engine) Registry() *catalog.Registry {
	return e.registry
}

// Limits returns the effective result caps.
func (e *Engine) Limits() Limits {
	return e.limits
}

// SearchRequest selects what Search ranks.
type SearchRequest struct {
	Query             string
	Categories        []string // empty means every category, in registry order
	Limit             int      // <= 0 uses the configured default
	IncludeUnreleased bool
}

// ScoredMatch is one ranked search hit.
type ScoredMatch struct {
	extract.Entry
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// Search ranks entries of the requested categories against the query.
// Results are ordered by score; ties keep registry then extraction order.
func (e *Engine) Search(ctx context.Context, req SearchRequest) ([]ScoredMatch, error) {
	q := strings.ToLower(strings.TrimSpace(req.Query))
	if q == "" {
		return nil, userErrorf("query must not be empty")
	}

	cats, err := e.resolveCategories(req.Categories)
	if err != nil {
		return nil, err
	}
	limit := clamp(req.Limit, e.limits.SearchDefault, e.limits.SearchMax)

	perCategory, err := e.entriesFor(ctx, cats)
	if err != nil {
		return nil, err
	}

	matches := []ScoredMatch{}
	for i, entries := range perCategory {
		for _, entry := range entries {
			if entry.IsUnreleased && !req.IncludeUnreleased {
				continue
			}
			score, ok := Score(entry, q)
			if !ok {
				continue
			}
			matches = append(matches, ScoredMatch{Entry: entry, Category: cats[i].Name, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Page is one slice of a category listing.
type Page struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Entries     []extract.Entry `json:"entries"`
	Total       int             `json:"total"`
	Offset      int             `json:"offset"`
	Limit       int             `json:"limit"`
	HasMore     bool            `json:"hasMore"`
}

// ListByCategory pages through a category in extraction order. Total counts
// entries after unreleased filtering.
func (e *Engine) ListByCategory(ctx context.Context, category string, limit, offset int, includeUnreleased bool) (*Page, error) {
	cat, err := e.category(category)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, userErrorf("offset must be >= 0, got %d", offset)
	}
	limit = clamp(limit, e.limits.ListDefault, e.limits.ListMax)

	entries, err := e.extractor.Entries(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", cat.Name, err)
	}

	visible := make([]extract.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsUnreleased && !includeUnreleased {
			continue
		}
		visible = append(visible, entry)
	}

	page := &Page{
		Category:    cat.Name,
		Description: cat.Description,
		Entries:     []extract.Entry{},
		Total:       len(visible),
		Offset:      offset,
		Limit:       limit,
		HasMore:     offset+limit < len(visible),
	}
	if offset < len(visible) {
		end := min(offset+limit, len(visible))
		page.Entries = visible[offset:end]
	}
	return page, nil
}

// Suggestion is a near miss offered when a lookup fails.
type Suggestion struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Distance int    `json:"distance"`
}

// LookupResult is the outcome of LookupEntry. Not finding an entry is a
// normal result carrying suggestions, not an error.
type LookupResult struct {
	Category    string         `json:"category"`
	Query       string         `json:"query"`
	Found       bool           `json:"found"`
	Entry       *extract.Entry `json:"entry,omitempty"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
}

// LookupEntry finds one entry by id, display name (both case-insensitive) or
// decimal sequence index. Unreleased entries are included.
func (e *Engine) LookupEntry(ctx context.Context, category, key string) (*LookupResult, error) {
	cat, err := e.category(category)
	if err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, userErrorf("id must not be empty")
	}

	entries, err := e.extractor.Entries(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", cat.Name, err)
	}

	result := &LookupResult{Category: cat.Name, Query: key}
	keyLower := strings.ToLower(key)
	for i := range entries {
		entry := entries[i]
		if strings.ToLower(entry.ID) == keyLower ||
			strings.ToLower(entry.DisplayName) == keyLower ||
			strconv.Itoa(entry.SequenceIndex) == key {
			result.Found = true
			result.Entry = &entry
			return result, nil
		}
	}

	result.Suggestions = suggest(entries, keyLower)
	return result, nil
}

func suggest(entries []extract.Entry, keyLower string) []Suggestion {
	var out []Suggestion
	for _, entry := range entries {
		d := distance(keyLower, strings.ToLower(entry.DisplayName))
		if d > MaxEditDistance {
			continue
		}
		out = append(out, Suggestion{Name: entry.DisplayName, ID: entry.ID, Index: entry.SequenceIndex, Distance: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// CategoryStats counts a category's entries by release state.
type CategoryStats struct {
	Category   string `json:"category"`
	Released   int    `json:"released"`
	Unreleased int    `json:"unreleased"`
	Total      int    `json:"total"`
}

// Stats counts entries of every category, in registry order.
func (e *Engine) Stats(ctx context.Context) ([]CategoryStats, error) {
	cats := e.registry.All()
	perCategory, err := e.entriesFor(ctx, cats)
	if err != nil {
		return nil, err
	}

	stats := make([]CategoryStats, len(cats))
	for i, entries := range perCategory {
		s := CategoryStats{Category: cats[i].Name, Total: len(entries)}
		for _, entry := range entries {
			if entry.IsUnreleased {
				s.Unreleased++
			} else {
				s.Released++
			}
		}
		stats[i] = s
	}
	return stats, nil
}

// entriesFor extracts categories concurrently. Results are indexed like
// cats, so merging them keeps registry order.
func (e *Engine) entriesFor(ctx context.Context, cats []catalog.Category) ([][]extract.Entry, error) {
	results := make([][]extract.Entry, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		g.Go(func() error {
			entries, err := e.extractor.Entries(gctx, cat)
			if err != nil {
				return fmt.Errorf("failed to extract %s: %w", cat.Name, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) category(name string) (catalog.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Category{}, userErrorf("category must not be empty (valid: %s)", strings.Join(e.registry.Names(), ", "))
	}
	cat, err := e.registry.Lookup(name)
	if err != nil {
		return catalog.Category{}, &UserError{Err: err}
	}
	return cat, nil
}

func (e *Engine) resolveCategories(names []string) ([]catalog.Category, error) {
	if len(names) == 0 {
		return e.registry.All(), nil
	}

	seen := make(map[string]bool, len(names))
	cats := make([]catalog.Category, 0, len(names))
	for _, name := range names {
		cat, err := e.category(name)
		if err != nil {
			return nil, err
		}
		if seen[cat.Name] {
			continue
		}
		seen[cat.Name] = true
		cats = append(cats, cat)
	}
	return cats, nil
}

// clamp applies the default to non-positive limits and caps the rest.
func clamp(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
