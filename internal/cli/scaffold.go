package cli

import (
	"github.com/mvp-joe/pmdo-query/internal/report"
	"github.com/mvp-joe/pmdo-query/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	spawnReq     scaffold.SpawnRequest
	itemSpawnReq scaffold.ItemSpawnRequest
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Generate zone spawn snippets",
}

var scaffoldSpawnCmd = &cobra.Command{
	Use:   "spawn <species>",
	Short: "Generate a GetTeamMob spawn entry",
	Long: `Generate a monster spawn entry for a zone's TeamSpawnZoneStep.

Example:
  pmdq scaffold spawn pikachu --level 10 --floor-end 5 --moves thunder_shock,quick_attack`,
	Args: cobra.ExactArgs(1),
	RunE: runScaffoldSpawn,
}

var scaffoldItemCmd = &cobra.Command{
	Use:   "item <item_id>",
	Short: "Generate an item spawn entry",
	Long: `Generate an item spawn entry for a zone's ItemSpawnZoneStep.

Example:
  pmdq scaffold item berry_oran --floor-end 10 --weight 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScaffoldItem,
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)
	scaffoldCmd.AddCommand(scaffoldSpawnCmd, scaffoldItemCmd)

	f := scaffoldSpawnCmd.Flags()
	f.StringVar(&spawnReq.Ability, "ability", "", "Ability ID (empty for the default ability)")
	f.StringSliceVar(&spawnReq.Moves, "moves", nil, "Move IDs (up to 4)")
	f.IntVar(&spawnReq.Level, "level", 0, "Level (1-100)")
	f.IntVar(&spawnReq.LevelVariance, "level-variance", scaffold.DefaultLevelVariance, "Level variance (+/-)")
	f.StringVar(&spawnReq.Tactic, "tactic", scaffold.DefaultTactic, "AI tactic")
	f.IntVar(&spawnReq.FloorStart, "floor-start", 0, "First floor")
	f.IntVar(&spawnReq.FloorEnd, "floor-end", 0, "Last floor (exclusive)")
	f.IntVar(&spawnReq.Weight, "weight", scaffold.DefaultWeight, "Spawn weight")
	_ = scaffoldSpawnCmd.MarkFlagRequired("level")
	_ = scaffoldSpawnCmd.MarkFlagRequired("floor-end")

	f = scaffoldItemCmd.Flags()
	f.IntVar(&itemSpawnReq.FloorStart, "floor-start", 0, "First floor")
	f.IntVar(&itemSpawnReq.FloorEnd, "floor-end", 0, "Last floor (exclusive)")
	f.IntVar(&itemSpawnReq.Weight, "weight", scaffold.DefaultWeight, "Spawn weight")
	f.StringVar(&itemSpawnReq.Category, "category", scaffold.DefaultItemCategory, "Item category in the zone's spawn table")
	_ = scaffoldItemCmd.MarkFlagRequired("floor-end")
}

func runScaffoldSpawn(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	req := spawnReq
	req.Species = args[0]
	result, err := scaffold.NewGenerator(engine).Spawn(cmd.Context(), req)
	if err != nil {
		return err
	}
	return render(cmd, result, func() string { return report.Scaffold("spawn entry", result) })
}

func runScaffoldItem(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	req := itemSpawnReq
	req.ItemID = args[0]
	result, err := scaffold.NewGenerator(engine).ItemSpawn(cmd.Context(), req)
	if err != nil {
		return err
	}
	return render(cmd, result, func() string { return report.Scaffold("item spawn", result) })
}
