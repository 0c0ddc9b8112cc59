package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/pmdo-query/internal/catalog"
	"github.com/mvp-joe/pmdo-query/internal/classdoc"
	"github.com/mvp-joe/pmdo-query/internal/query"
	"github.com/mvp-joe/pmdo-query/internal/report"
	"github.com/mvp-joe/pmdo-query/internal/scaffold"
)

// Querier is the query surface the tools call. *query.Engine implements it.
type Querier interface {
	Registry() *catalog.Registry
	Limits() query.Limits
	Search(ctx context.Context, req query.SearchRequest) ([]query.ScoredMatch, error)
	ListByCategory(ctx context.Context, category string, limit, offset int, includeUnreleased bool) (*query.Page, error)
	LookupEntry(ctx context.Context, category, key string) (*query.LookupResult, error)
	ListClasses(ctx context.Context, category string) (*query.ClassList, error)
	ClassDocs(ctx context.Context, typeName string) (*classdoc.ClassDescriptor, bool, error)
	Stats(ctx context.Context) ([]query.CategoryStats, error)
}

// Tool names.
const (
	ToolSearch         = "pmdo_search"
	ToolListData       = "pmdo_list_data"
	ToolGetEntry       = "pmdo_get_entry"
	ToolListClasses    = "pmdo_list_classes"
	ToolGetClassDocs   = "pmdo_get_class_docs"
	ToolStats          = "pmdo_stats"
	ToolScaffoldSpawn  = "pmdo_scaffold_spawn"
	ToolScaffoldItem   = "pmdo_scaffold_item_spawn"
	formatArgumentHelp = "Output format: markdown (default) or json"
)

func formatOption() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Enum(FormatMarkdown, FormatJSON),
		mcp.Description(formatArgumentHelp))
}

func categoryDescriptions(r *catalog.Registry) string {
	var lines []string
	for _, c := range r.All() {
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Description))
	}
	return strings.Join(lines, "\n")
}

// AddSearchTool registers pmdo_search.
func AddSearchTool(s *server.MCPServer, q Querier, metrics *ToolMetrics) {
	limits := q.Limits()
	tool := mcp.NewTool(ToolSearch,
		mcp.WithDescription("Search for PMDO game data entries across all categories by name.\n\n"+
			"Searches items, skills, monsters, zones, etc. Returns matches ranked by relevance "+
			"(exact, prefix, substring, description, then fuzzy name matches).\n\n"+
			"Categories: "+strings.Join(q.Registry().Names(), ", ")),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g., 'apple', 'thunderbolt', 'pikachu')")),
		mcp.WithString("category",
			mcp.Enum(q.Registry().Names()...),
			mcp.Description("Optional category to limit search")),
		mcp.WithArray("categories",
			mcp.WithStringItems(),
			mcp.Description("Optional list of categories to search")),
		mcp.WithNumber("limit",
			mcp.Min(1), mcp.Max(float64(limits.SearchMax)),
			mcp.Description(fmt.Sprintf("Maximum results to return (1-%d, default: %d)", limits.SearchMax, limits.SearchDefault))),
		mcp.WithBoolean("include_unreleased",
			mcp.Description("Include unreleased/WIP entries marked with **")),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolSearch, metrics, createSearchHandler(q)))
}

func createSearchHandler(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args searchArgs
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.Query, "query"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		matches, err := q.Search(ctx, query.SearchRequest{
			Query:             args.Query,
			Categories:        args.categories(),
			Limit:             args.Limit,
			IncludeUnreleased: args.IncludeUnreleased,
		})
		if err != nil {
			return failure(err)
		}

		response := map[string]any{"query": args.Query, "results": matches, "total": len(matches)}
		return respond(args.Format, response, func() string { return report.Search(args.Query, matches) })
	}
}

// AddListDataTool registers pmdo_list_data.
func AddListDataTool(s *server.MCPServer, q Querier, metrics *ToolMetrics) {
	limits := q.Limits()
	tool := mcp.NewTool(ToolListData,
		mcp.WithDescription("List PMDO game data entries by category.\n\nCategories:\n"+categoryDescriptions(q.Registry())),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Enum(q.Registry().Names()...),
			mcp.Description("Category of data to list")),
		mcp.WithNumber("limit",
			mcp.Min(1), mcp.Max(float64(limits.ListMax)),
			mcp.Description(fmt.Sprintf("Maximum results to return (1-%d, default: %d)", limits.ListMax, limits.ListDefault))),
		mcp.WithNumber("offset",
			mcp.Min(0),
			mcp.Description("Number of results to skip for pagination")),
		mcp.WithBoolean("include_unreleased",
			mcp.Description("Include unreleased/WIP entries marked with **")),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolListData, metrics, createListDataHandler(q)))
}

func createListDataHandler(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args listArgs
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.Category, "category"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		page, err := q.ListByCategory(ctx, args.Category, args.Limit, args.Offset, args.IncludeUnreleased)
		if err != nil {
			return failure(err)
		}
		return respond(args.Format, page, func() string { return report.Page(page) })
	}
}

// AddGetEntryTool registers pmdo_get_entry.
func AddGetEntryTool(s *server.MCPServer, q Querier, metrics *ToolMetrics) {
	tool := mcp.NewTool(ToolGetEntry,
		mcp.WithDescription("Get detailed information about a specific PMDO game data entry.\n\n"+
			"Looks up by id, name or index; suggests close matches when nothing matches exactly."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Enum(q.Registry().Names()...),
			mcp.Description("Category of data")),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry ID, name or index to look up")),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolGetEntry, metrics, createGetEntryHandler(q)))
}

func createGetEntryHandler(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args entryArgs
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.Category, "category"); res != nil {
			return res, nil
		}
		if res := requireArg(args.ID, "id"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		result, err := q.LookupEntry(ctx, args.Category, args.ID)
		if err != nil {
			return failure(err)
		}
		return respond(args.Format, result, func() string { return report.Lookup(result) })
	}
}

// AddListClassesTool registers pmdo_list_classes.
func AddListClassesTool(s *server.MCPServer, q Querier, metrics *ToolMetrics) {
	tool := mcp.NewTool(ToolListClasses,
		mcp.WithDescription("List classes in a PMDO data category with their XML documentation.\n\n"+
			"Returns class names, summaries, and key methods from the source files."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Enum(q.Registry().Names()...),
			mcp.Description("Category of classes to list")),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolListClasses, metrics, createListClassesHandler(q)))
}

func createListClassesHandler(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args categoryArgs
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.Category, "category"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		list, err := q.ListClasses(ctx, args.Category)
		if err != nil {
			return failure(err)
		}
		return respond(args.Format, list, func() string { return report.ClassList(list) })
	}
}

// AddGetClassDocsTool registers pmdo_get_class_docs.
func AddGetClassDocsTool(s *server.MCPServer, q Querier, metrics *ToolMetrics) {
	tool := mcp.NewTool(ToolGetClassDocs,
		mcp.WithDescription("Get detailed XML documentation for a specific PMDO class.\n\n"+
			"Extracts from C# source files: class summary and remarks, public fields and properties, "+
			"public methods with signatures."),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Name of the class to get documentation for (case-insensitive)")),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolGetClassDocs, metrics, createGetClassDocsHandler(q)))
}

func createGetClassDocsHandler(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args classArgs
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.ClassName, "class_name"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		desc, found, err := q.ClassDocs(ctx, args.ClassName)
		if err != nil {
			return failure(err)
		}
		if !found {
			response := map[string]any{"class_name": args.ClassName, "found": false}
			return respond(args.Format, response, func() string { return report.ClassNotFound(args.ClassName) })
		}
		return respond(args.Format, desc, func() string { return report.ClassDoc(desc) })
	}
}

// AddStatsTool registers pmdo_stats.
func AddStatsTool(s *server.MCPServer, q Querier, metrics *ToolMetrics) {
	tool := mcp.NewTool(ToolStats,
		mcp.WithDescription("Get statistics about PMDO game data.\n\nReturns released, unreleased and total counts for each data category."),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolStats, metrics, createStatsHandler(q)))
}

func createStatsHandler(q Querier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args formatArgs
		if request.GetRawArguments() != nil {
			if res := bindArgs(request, &args); res != nil {
				return res, nil
			}
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		stats, err := q.Stats(ctx)
		if err != nil {
			return failure(err)
		}
		return respond(args.Format, stats, func() string { return report.Stats(stats) })
	}
}

// AddScaffoldSpawnTool registers pmdo_scaffold_spawn.
func AddScaffoldSpawnTool(s *server.MCPServer, gen *scaffold.Generator, metrics *ToolMetrics) {
	tool := mcp.NewTool(ToolScaffoldSpawn,
		mcp.WithDescription("Generate a monster spawn entry for a PMDO zone file.\n\n"+
			"Creates a properly formatted GetTeamMob call for adding monsters to dungeon spawn tables."),
		mcp.WithString("species",
			mcp.Required(),
			mcp.Description("Pokemon species ID (lowercase, e.g., 'pikachu', 'mr_mime')")),
		mcp.WithString("ability",
			mcp.Description("Ability ID (empty for default ability)")),
		mcp.WithArray("moves",
			mcp.WithStringItems(),
			mcp.MaxItems(scaffold.MaxMoves),
			mcp.Description("Move IDs (up to 4)")),
		mcp.WithNumber("level",
			mcp.Required(),
			mcp.Min(scaffold.MinLevel), mcp.Max(scaffold.MaxLevel),
			mcp.Description("Pokemon level")),
		mcp.WithNumber("level_variance",
			mcp.Min(0),
			mcp.Description(fmt.Sprintf("Level variance (+/-, default: %d)", scaffold.DefaultLevelVariance))),
		mcp.WithString("tactic",
			mcp.Enum(scaffold.Tactics...),
			mcp.Description("AI behavior tactic (default: "+scaffold.DefaultTactic+")")),
		mcp.WithNumber("floor_start",
			mcp.Min(0),
			mcp.Description("First floor to spawn on (default: 0)")),
		mcp.WithNumber("floor_end",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Last floor to spawn on (exclusive)")),
		mcp.WithNumber("weight",
			mcp.Min(1),
			mcp.Description(fmt.Sprintf("Spawn weight (higher = more common, default: %d)", scaffold.DefaultWeight))),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolScaffoldSpawn, metrics, createScaffoldSpawnHandler(gen)))
}

func createScaffoldSpawnHandler(gen *scaffold.Generator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := spawnArgs{SpawnRequest: scaffold.SpawnRequest{
			LevelVariance: scaffold.DefaultLevelVariance,
			Tactic:        scaffold.DefaultTactic,
			Weight:        scaffold.DefaultWeight,
		}}
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.Species, "species"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		result, err := gen.Spawn(ctx, args.SpawnRequest)
		if err != nil {
			return failure(err)
		}
		return respond(args.Format, result, func() string { return report.Scaffold("spawn entry", result) })
	}
}

// AddScaffoldItemSpawnTool registers pmdo_scaffold_item_spawn.
func AddScaffoldItemSpawnTool(s *server.MCPServer, gen *scaffold.Generator, metrics *ToolMetrics) {
	tool := mcp.NewTool(ToolScaffoldItem,
		mcp.WithDescription("Generate an item spawn entry for a PMDO zone file.\n\n"+
			"Creates a properly formatted item spawn for zone item tables."),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("Item ID (e.g., 'berry_oran', 'food_apple', 'seed_reviver')")),
		mcp.WithNumber("floor_start",
			mcp.Min(0),
			mcp.Description("First floor to spawn on (default: 0)")),
		mcp.WithNumber("floor_end",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Last floor to spawn on (exclusive)")),
		mcp.WithNumber("weight",
			mcp.Min(1),
			mcp.Description(fmt.Sprintf("Spawn weight (higher = more common, default: %d)", scaffold.DefaultWeight))),
		mcp.WithString("category",
			mcp.Description("Item category (default: "+scaffold.DefaultItemCategory+")")),
		formatOption(),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(tool, withCallLog(ToolScaffoldItem, metrics, createScaffoldItemSpawnHandler(gen)))
}

func createScaffoldItemSpawnHandler(gen *scaffold.Generator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := itemSpawnArgs{ItemSpawnRequest: scaffold.ItemSpawnRequest{
			Weight:   scaffold.DefaultWeight,
			Category: scaffold.DefaultItemCategory,
		}}
		if res := bindArgs(request, &args); res != nil {
			return res, nil
		}
		if res := requireArg(args.ItemID, "item_id"); res != nil {
			return res, nil
		}
		if res := checkFormat(args.Format); res != nil {
			return res, nil
		}

		result, err := gen.ItemSpawn(ctx, args.ItemSpawnRequest)
		if err != nil {
			return failure(err)
		}
		return respond(args.Format, result, func() string { return report.Scaffold("item spawn", result) })
	}
}
