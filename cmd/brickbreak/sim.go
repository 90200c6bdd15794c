package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickbreak/internal/games/breakout"
	"github.com/vovakirdan/brickbreak/internal/storage"
)

var (
	flagSimTicks  uint64
	flagSimPilot  string
	flagSimEvery  uint64
	flagSimFormat string
	flagSimOpen   bool
	flagSimSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [layout]",
	Short: "Run a headless session and print the result",
	Long: `Simulate a session without a terminal UI. The paddle is steered by a
pilot: none, left, right or follow (tracks the ball).

The session stops when the field is cleared, the ball is lost through an
open bottom, or --ticks ticks have run. Runs are deterministic: the same
config, layout and pilot always produce the same hash.

Examples:
  brickbreak sim
  brickbreak sim pyramid --ticks 50000 --pilot follow
  brickbreak sim classic --open-bottom --pilot none --format yaml
  brickbreak sim diamond --every 1000 --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 20000, "Maximum ticks to simulate")
	simCmd.Flags().StringVar(&flagSimPilot, "pilot", "follow", "Paddle pilot: "+strings.Join(breakout.PilotNames(), ", "))
	simCmd.Flags().Uint64Var(&flagSimEvery, "every", 0, "Log progress every N ticks (0 = off)")
	simCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Output format: text or yaml")
	simCmd.Flags().BoolVar(&flagSimOpen, "open-bottom", false, "Remove the bottom wall so the ball can be lost")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the finished run in the runs database")
}

// simReport is the printed result of a headless run.
type simReport struct {
	Layout     string  `yaml:"layout"`
	Difficulty string  `yaml:"difficulty"`
	Pilot      string  `yaml:"pilot"`
	Ticks      uint64  `yaml:"ticks"`
	Seconds    float64 `yaml:"seconds"`
	Score      int     `yaml:"score"`
	BricksLeft int     `yaml:"bricks_left"`
	Outcome    string  `yaml:"outcome"`
	Hash       string  `yaml:"hash"`
}

func runSim(_ *cobra.Command, args []string) error {
	layoutID := defaultLayout
	if len(args) > 0 {
		layoutID = args[0]
	}

	if flagSimFormat != "text" && flagSimFormat != "yaml" {
		return fmt.Errorf("unknown --format %q (want text or yaml)", flagSimFormat)
	}

	logger, err := newLogger(false)
	if err != nil {
		return err
	}

	layout, err := breakout.GetLayout(layoutID)
	if err != nil {
		return err
	}
	pilot, err := breakout.ParsePilot(flagSimPilot)
	if err != nil {
		return err
	}

	cfg, err := breakout.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	if flagSimOpen {
		cfg.Field.OpenBottom = true
	}

	session, err := breakout.NewSession(cfg, layout)
	if err != nil {
		return err
	}

	logger.Debug("simulation started",
		"layout", layoutID,
		"pilot", flagSimPilot,
		"bricks", session.World().LiveBricks(),
		"tick_rate", cfg.Timing.TickRate,
	)

	result := breakout.Simulate(session, pilot, flagSimTicks, func(r breakout.TickResult) {
		if flagSimEvery > 0 && r.Tick%flagSimEvery == 0 {
			logger.Info("progress", "tick", r.Tick, "score", r.Score, "bricks_left", r.BricksLeft)
		}
	})

	snap := session.Snapshot()
	report := simReport{
		Layout:     layoutID,
		Difficulty: difficultyName(),
		Pilot:      flagSimPilot,
		Ticks:      result.Tick,
		Seconds:    float64(result.Tick) * cfg.Timing.TickSeconds(),
		Score:      result.Score,
		BricksLeft: result.BricksLeft,
		Outcome:    result.Outcome.String(),
		Hash:       fmt.Sprintf("%016x", snap.Hash()),
	}

	logger.Debug("simulation finished", "ticks", report.Ticks, "outcome", report.Outcome)

	if flagSimSave {
		if err := saveSimRun(report); err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}

	if flagSimFormat == "yaml" {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Printf("Layout:      %s (%s)\n", layout.Name, report.Difficulty)
	fmt.Printf("Pilot:       %s\n", report.Pilot)
	fmt.Printf("Ticks:       %d (%.1fs simulated)\n", report.Ticks, report.Seconds)
	fmt.Printf("Score:       %d\n", report.Score)
	fmt.Printf("Bricks left: %d\n", report.BricksLeft)
	fmt.Printf("Outcome:     %s\n", report.Outcome)
	fmt.Printf("Hash:        %s\n", report.Hash)
	return nil
}

// saveSimRun records a headless run next to interactive ones.
func saveSimRun(report simReport) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(storage.Run{
		Layout:     report.Layout,
		Difficulty: report.Difficulty,
		Score:      report.Score,
		Ticks:      report.Ticks,
		Outcome:    report.Outcome,
	})
	return err
}

// difficultyName returns the preset name selected by --difficulty.
func difficultyName() string {
	if flagDifficulty == "" {
		return "normal"
	}
	return flagDifficulty
}
