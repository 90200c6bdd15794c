package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreak/internal/registry"
	"github.com/vovakirdan/brickbreak/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <layout>",
	Short: "Show best runs for a layout",
	Long: `Display the best runs recorded for the specified layout.
Runs are ranked by score, then by fewer ticks.

Examples:
  brickbreak scores classic
  brickbreak scores pyramid --limit 25
  brickbreak scores diamond --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the layout")
}

func runScores(_ *cobra.Command, args []string) error {
	layoutID := args[0]

	if !registry.Exists(layoutID) {
		return fmt.Errorf("unknown layout %q (run 'brickbreak list' to see available layouts)", layoutID)
	}

	game, err := registry.Create(layoutID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(layoutID); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Printf("Cleared all runs for %s.\n", game.Title())
		return nil
	}

	runs, err := store.TopRuns(layoutID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'brickbreak play %s' to set the first high score!\n", layoutID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-10s  %-7s  %s\n", "Rank", "Score", "Ticks", "Outcome", "Level", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-10s  %-7s  %s\n", "----", "-----", "-----", "-------", "-----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-8d  %-10s  %-7s  %s\n",
			i+1, r.Score, r.Ticks, r.Outcome, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(layoutID)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Cleared: %d  Best: %d  Average: %.1f\n",
			stats.Runs, stats.Cleared, stats.HighScore, stats.AvgScore)
	}
	return nil
}
