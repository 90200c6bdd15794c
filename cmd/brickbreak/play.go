package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreak/internal/core"
	"github.com/vovakirdan/brickbreak/internal/platform/tui"
	"github.com/vovakirdan/brickbreak/internal/registry"
	"github.com/vovakirdan/brickbreak/internal/storage"
)

// defaultLayout is played when no layout is named.
const defaultLayout = "classic"

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a brick layout",
	Long: `Start playing the specified layout (classic when omitted).

Controls:
  Left/Right, A/D, H/L  - Move paddle
  P/Space               - Pause
  R                     - Restart (after the field is cleared or the ball is lost)
  B/Esc                 - Back (while paused or finished)
  Ctrl+S                - Save a text screenshot
  Q/Ctrl+C              - Quit

Without --difficulty a preset picker is shown first.

Examples:
  brickbreak play
  brickbreak play pyramid --difficulty easy
  brickbreak play diamond --config ./my-breakout.yaml
  brickbreak play classic --fps 120`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	layoutID := defaultLayout
	if len(args) > 0 {
		layoutID = args[0]
	}

	if !registry.Exists(layoutID) {
		return fmt.Errorf("unknown layout %q (run 'brickbreak list' to see available layouts)", layoutID)
	}

	logger, err := newLogger(true)
	if err != nil {
		return err
	}

	cfg := terminalConfig()

	game, err := registry.Create(layoutID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	difficulty := flagDifficulty
	if difficulty == "" {
		preset, quit, selErr := tui.RunDifficultySelector(game.Title(), "normal", cfg)
		if selErr != nil {
			return selErr
		}
		// User pressed back or quit
		if quit || preset == "" {
			return nil
		}
		difficulty = preset
	}
	if t, ok := game.(registry.Tunable); ok {
		if err := t.SetDifficulty(difficulty); err != nil {
			return err
		}
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// openStore opens the runs database; the game still works without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
