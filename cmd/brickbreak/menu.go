package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreak/internal/platform/tui"
	"github.com/vovakirdan/brickbreak/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick layouts from an interactive menu",
	Long: `Start brickbreak in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a layout, then
pick a difficulty. After a game ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best runs
  Q            - Quit

Examples:
  brickbreak menu
  brickbreak menu --fps 30
  brickbreak menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(true)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	preset := flagDifficulty
	if preset == "" {
		preset = "normal"
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		chosen, quit, err := tui.RunDifficultySelector(game.Title(), preset, cfg)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if chosen == "" {
			continue // Back to menu
		}
		preset = chosen

		if t, ok := game.(registry.Tunable); ok {
			if err := t.SetDifficulty(preset); err != nil {
				return err
			}
		}

		if err := tui.Run(game, store, logger, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
