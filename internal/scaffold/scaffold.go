// Package scaffold renders C# snippets that add spawn entries to zone files.
//
// Generated code only ever interpolates validated ids, so the output is safe
// to paste into the generator. Whether an id names real content is checked
// against the corpus, but a miss is only a warning: the content may be added
// in the same change.
package scaffold

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"slices"
	"strings"

	"github.com/mvp-joe/pmdo-query/internal/query"
)

// Defaults applied by the boundaries when an argument is omitted.
const (
	DefaultLevelVariance = 2
	DefaultTactic        = "wander_dumb"
	DefaultWeight        = 10
	DefaultItemCategory  = "necessities"

	MaxMoves = 4
	MinLevel = 1
	MaxLevel = 100
)

// Tactics are the AI behaviors a spawned team may use.
var Tactics = []string{"wander_dumb", "wander_normal", "slow_patrol", "weird_tree"}

var gameID = regexp.MustCompile(`^[a-z0-9_]+$`)

// Lookup resolves an id within a category; *query.Engine satisfies it.
type Lookup interface {
	LookupEntry(ctx context.Context, category, key string) (*query.LookupResult, error)
}

// SpawnRequest describes one monster team spawn.
type SpawnRequest struct {
	Species       string   `json:"species"`
	Ability       string   `json:"ability"`
	Moves         []string `json:"moves"`
	Level         int      `json:"level"`
	LevelVariance int      `json:"level_variance"`
	Tactic        string   `json:"tactic"`
	FloorStart    int      `json:"floor_start"`
	FloorEnd      int      `json:"floor_end"` // exclusive
	Weight        int      `json:"weight"`
}

// ItemSpawnRequest describes one item spawn.
type ItemSpawnRequest struct {
	ItemID     string `json:"item_id"`
	FloorStart int    `json:"floor_start"`
	FloorEnd   int    `json:"floor_end"` // exclusive
	Weight     int    `json:"weight"`
	Category   string `json:"category"`
}

// Result is a generated snippet plus where it goes.
type Result struct {
	Code     string   `json:"code"`
	Hint     string   `json:"hint"`
	Warnings []string `json:"warnings,omitempty"`
}

// Generator renders spawn snippets. A nil Lookup skips existence checks.
type Generator struct {
	lookup Lookup
}

// NewGenerator creates a generator that checks ids through lookup.
func NewGenerator(lookup Lookup) *Generator {
	return &Generator{lookup: lookup}
}

// Spawn renders a GetTeamMob entry for a TeamSpawnZoneStep.
func (g *Generator) Spawn(ctx context.Context, req SpawnRequest) (*Result, error) {
	if req.Tactic == "" {
		req.Tactic = DefaultTactic
	}

	var problems []string
	if req.Species == "" {
		problems = append(problems, "species is required")
	}
	problems = appendFloorProblems(problems, req.FloorStart, req.FloorEnd, req.Weight)
	if req.Level < MinLevel || req.Level > MaxLevel {
		problems = append(problems, fmt.Sprintf("level must be between %d and %d, got %d", MinLevel, MaxLevel, req.Level))
	}
	if req.LevelVariance < 0 {
		problems = append(problems, fmt.Sprintf("level_variance must be >= 0, got %d", req.LevelVariance))
	}
	if len(req.Moves) > MaxMoves {
		problems = append(problems, fmt.Sprintf("at most %d moves are allowed, got %d", MaxMoves, len(req.Moves)))
	}
	if !slices.Contains(Tactics, req.Tactic) {
		problems = append(problems, fmt.Sprintf("tactic %q is not one of %s", req.Tactic, strings.Join(Tactics, ", ")))
	}
	problems = appendIDProblem(problems, req.Species, "species")
	problems = appendIDProblem(problems, req.Ability, "ability")
	for i, move := range req.Moves {
		problems = appendIDProblem(problems, move, fmt.Sprintf("moves[%d]", i))
	}
	if err := validationError(problems); err != nil {
		return nil, err
	}

	moves := make([]string, MaxMoves)
	copy(moves, req.Moves)

	levelRange := fmt.Sprintf("new RandRange(%d)", req.Level)
	if req.LevelVariance > 0 {
		levelRange = fmt.Sprintf("new RandRange(%d, %d)",
			max(MinLevel, req.Level-req.LevelVariance),
			min(MaxLevel, req.Level+req.LevelVariance))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s spawn entry\n", capitalize(req.Species))
	b.WriteString("poolSpawn.Spawns.Add(\n")
	fmt.Fprintf(&b, "    GetTeamMob(%q, %q, %q, %q, %q, %q,\n", req.Species, req.Ability, moves[0], moves[1], moves[2], moves[3])
	fmt.Fprintf(&b, "        %s, %q),\n", levelRange, req.Tactic)
	fmt.Fprintf(&b, "    new IntRange(%d, %d),\n", req.FloorStart, req.FloorEnd)
	fmt.Fprintf(&b, "    %d\n", req.Weight)
	b.WriteString(");")

	result := &Result{
		Code: b.String(),
		Hint: "Add this to your zone's TeamSpawnZoneStep section.",
	}
	if w := g.checkExists(ctx, "monsters", "Species", req.Species); w != "" {
		result.Warnings = append(result.Warnings, w)
	}
	return result, nil
}

// ItemSpawn renders an InvItem entry for an ItemSpawnZoneStep category.
func (g *Generator) ItemSpawn(ctx context.Context, req ItemSpawnRequest) (*Result, error) {
	if req.Category == "" {
		req.Category = DefaultItemCategory
	}

	var problems []string
	if req.ItemID == "" {
		problems = append(problems, "item_id is required")
	}
	problems = appendFloorProblems(problems, req.FloorStart, req.FloorEnd, req.Weight)
	problems = appendIDProblem(problems, req.ItemID, "item_id")
	problems = appendIDProblem(problems, req.Category, "category")
	if err := validationError(problems); err != nil {
		return nil, err
	}

	code := fmt.Sprintf("// Item spawn: %s\n%s.Spawns.Add(new InvItem(%q), new IntRange(%d, %d), %d);",
		req.ItemID, req.Category, req.ItemID, req.FloorStart, req.FloorEnd, req.Weight)

	result := &Result{
		Code: code,
		Hint: "Add this to your zone's ItemSpawnZoneStep section under the appropriate category.",
	}
	if w := g.checkExists(ctx, "items", "Item", req.ItemID); w != "" {
		result.Warnings = append(result.Warnings, w)
	}
	return result, nil
}

// checkExists returns a warning when id is not an entry id of category.
// Lookup failures are logged and produce no warning.
func (g *Generator) checkExists(ctx context.Context, category, label, id string) string {
	if g.lookup == nil {
		return ""
	}
	res, err := g.lookup.LookupEntry(ctx, category, id)
	if err != nil {
		log.Printf("scaffold: %s lookup failed: %v", category, err)
		return ""
	}
	if res.Found && res.Entry.ID == id {
		return ""
	}
	return fmt.Sprintf("Warning: %s '%s' not found in game data. Verify the ID is correct.", label, id)
}

func appendFloorProblems(problems []string, start, end, weight int) []string {
	if start < 0 {
		problems = append(problems, fmt.Sprintf("floor_start must be >= 0, got %d", start))
	}
	if end < 1 {
		problems = append(problems, fmt.Sprintf("floor_end must be >= 1, got %d", end))
	}
	if start >= end {
		problems = append(problems, fmt.Sprintf("floor_start (%d) must be less than floor_end (%d)", start, end))
	}
	if weight < 1 {
		problems = append(problems, fmt.Sprintf("weight must be >= 1, got %d", weight))
	}
	return problems
}

// appendIDProblem rejects ids that are unsafe to interpolate. Empty ids are
// allowed; required fields are checked separately.
func appendIDProblem(problems []string, id, field string) []string {
	if id == "" || gameID.MatchString(id) {
		return problems
	}
	return append(problems, fmt.Sprintf("%s contains invalid characters. Only lowercase letters, numbers, and underscores are allowed.", field))
}

func validationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &query.UserError{Msg: "validation errors:\n  - " + strings.Join(problems, "\n  - ")}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
