package cli

import (
	"strings"

	"github.com/mvp-joe/pmdo-query/internal/query"
	"github.com/mvp-joe/pmdo-query/internal/report"
	"github.com/spf13/cobra"
)

var (
	searchCategories  []string
	searchLimit       int
	includeUnreleased bool
	listLimit         int
	listOffset        int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search game data entries by name",
	Long: `Search every category (or the ones given with --category) for entries whose
name or description matches the query. Results are ranked exact, prefix,
substring, description, then close misspellings of the name.

Examples:
  pmdq search apple
  pmdq search thunder --category skills --limit 5
  pmdq search "bolt seed" --include-unreleased`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var listCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List the entries of a category",
	Long: `List a category's entries in generation order, one page at a time.

Examples:
  pmdq list items
  pmdq list monsters --limit 100 --offset 100`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var entryCmd = &cobra.Command{
	Use:   "entry <category> <id|name|index>",
	Short: "Show one entry, or suggestions when it does not exist",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntry,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count released and unreleased entries per category",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(searchCmd, listCmd, entryCmd, statsCmd)

	searchCmd.Flags().StringSliceVarP(&searchCategories, "category", "c", nil, "Limit the search to these categories")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum results (default from config)")
	searchCmd.Flags().BoolVarP(&includeUnreleased, "include-unreleased", "u", false, "Include unreleased/WIP entries")

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Page size (default from config)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Entries to skip")
	listCmd.Flags().BoolVarP(&includeUnreleased, "include-unreleased", "u", false, "Include unreleased/WIP entries")
}

func runSearch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	q := strings.Join(args, " ")
	matches, err := engine.Search(cmd.Context(), query.SearchRequest{
		Query:             q,
		Categories:        searchCategories,
		Limit:             searchLimit,
		IncludeUnreleased: includeUnreleased,
	})
	if err != nil {
		return err
	}
	return render(cmd, matches, func() string { return report.Search(q, matches) })
}

func runList(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	page, err := engine.ListByCategory(cmd.Context(), args[0], listLimit, listOffset, includeUnreleased)
	if err != nil {
		return err
	}
	return render(cmd, page, func() string { return report.Page(page) })
}

func runEntry(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	result, err := engine.LookupEntry(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return render(cmd, result, func() string { return report.Lookup(result) })
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	stats, err := engine.Stats(cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd, stats, func() string { return report.Stats(stats) })
}
