package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/games/breakout"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved breakout config as YAML",
	Long: `Print the config a new session would use, after the search order
(--config, ~/.brickbreak/configs, ./configs, built-in) and the difficulty
preset have been applied. Use --default to print the built-in file, which
is a good starting point for a custom config.

Examples:
  brickbreak config
  brickbreak config --difficulty hard
  brickbreak config --default > ~/.brickbreak/configs/breakout.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefault {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	if _, err := newLogger(false); err != nil {
		return err
	}

	cfg, err := breakout.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := config.MarshalBreakout(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
