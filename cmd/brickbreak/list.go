package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreak/internal/games/breakout"
	"github.com/vovakirdan/brickbreak/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all brick layouts",
	Long:  `Shows every registered layout and how many bricks it places with the current config.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No layouts available.")
		return nil
	}

	if _, err := newLogger(false); err != nil {
		return err
	}

	cfg, err := breakout.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	grid := breakout.ComputeGrid(cfg)

	fmt.Printf("Available layouts (%dx%d brick grid):\n", grid.Rows, grid.Cols)
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %6s  %s\n", maxIDLen, "ID", "Bricks", "Title")
	fmt.Printf("  %-*s  %6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, g := range games {
		bricks := "?"
		if layout, err := breakout.GetLayout(g.ID); err == nil {
			bricks = fmt.Sprintf("%d", layout.Count(grid))
		}
		fmt.Printf("  %-*s  %6s  %s\n", maxIDLen, g.ID, bricks, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'brickbreak play <id>' to play a layout.")
	return nil
}
