// brickbreak is a terminal brick-breaker built on a fixed-step physics core.
//
// Usage:
//
//	brickbreak list              - List brick layouts
//	brickbreak play [layout]     - Play a layout
//	brickbreak menu              - Pick layouts interactively
//	brickbreak serve             - Start SSH server for remote play
//	brickbreak scores <layout>   - Show best runs for a layout
//	brickbreak sim [layout]      - Run a headless session and print the result
//	brickbreak config            - Print the resolved YAML config
//
// Global flags:
//
//	--fps <rate>          - Override the configured tick rate
//	--db <path>           - Set database path (default: ~/.brickbreak/runs.db)
//	--config <path>       - Use a custom breakout YAML config
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file (interactive commands log nowhere by default)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreak/internal/games/breakout"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logFile is the open --log-file, closed when the command returns.
var logFile *os.File

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickbreak",
	Short: "Brickbreak - break bricks in your terminal",
	Long: `Brickbreak is a terminal brick-breaker. A paddle, a ball and a
grid of bricks are simulated in world units at a fixed tick rate and
drawn to whatever terminal size you have.

Available commands:
  list     - Show all brick layouts
  play     - Play a layout directly
  menu     - Interactive layout picker
  serve    - Start SSH server for remote play
  scores   - View best runs
  sim      - Headless simulation
  config   - Print the resolved config

Examples:
  brickbreak list
  brickbreak play pyramid
  brickbreak menu --difficulty hard
  brickbreak serve --ssh :2222
  brickbreak sim classic --ticks 20000 --input follow`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		breakout.SetConfigPath(flagConfig)
		if err := breakout.SetDifficultyPreset(flagDifficulty); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brickbreak/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger and hands it to the breakout package
// for config warnings. Interactive commands own the terminal, so they pass
// interactive=true and only log when --log-file is set.
func newLogger(interactive bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickbreak",
		Level:           level,
	})
	breakout.SetLogger(logger)
	return logger, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

