package breakout

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/core"
	"github.com/vovakirdan/brickbreak/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

func newTestGame(t *testing.T, layout Layout, cfg config.BreakoutConfig) *Game {
	t.Helper()
	g := NewWithConfig(layout, cfg)
	if err := g.Reset(testRuntime()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	layout, _ := GetLayout("diamond")

	run := func() Snapshot {
		g := newTestGame(t, layout, config.DefaultBreakoutConfig())
		for i := range 400 {
			var in core.InputFrame
			switch {
			case i%5 < 3:
				in = frame(core.ActionRight)
			default:
				in = frame(core.ActionLeft)
			}
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Session().Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.PaddleX != snap2.PaddleX {
		t.Errorf("Determinism failed: paddle positions differ. Run1=%v, Run2=%v", snap1.PaddleX, snap2.PaddleX)
	}
}

func TestGamePauseStopsSimulation(t *testing.T) {
	layout, _ := GetLayout("classic")
	g := newTestGame(t, layout, config.DefaultBreakoutConfig())

	g.Step(frame())
	if g.Session().Ticks() != 1 {
		t.Fatalf("Ticks() = %d, expected 1", g.Session().Ticks())
	}

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Pause should pause the game")
	}
	for range 10 {
		g.Step(frame(core.ActionRight))
	}
	if g.Session().Ticks() != 1 {
		t.Errorf("paused game advanced to tick %d", g.Session().Ticks())
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("second Pause should resume")
	}
	if g.Session().Ticks() != 2 {
		t.Errorf("Ticks() = %d after resume, expected 2", g.Session().Ticks())
	}
}

func TestGameRestartOnlyWhenStopped(t *testing.T) {
	layout, _ := GetLayout("classic")
	g := newTestGame(t, layout, config.DefaultBreakoutConfig())

	for range 5 {
		g.Step(frame())
	}
	g.Step(frame(core.ActionRestart))
	if g.Session().Ticks() != 6 {
		t.Errorf("restart while playing should be ignored, Ticks() = %d", g.Session().Ticks())
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRestart))
	if g.Session().Ticks() != 0 || g.state != StatePlaying {
		t.Errorf("restart while paused should build a new session, Ticks() = %d state %s", g.Session().Ticks(), g.state)
	}
}

func TestGameClearedEndsGame(t *testing.T) {
	g := newTestGame(t, Layout{ID: "empty", Name: "Empty", Mask: []string{"."}}, config.DefaultBreakoutConfig())

	res := g.Step(frame())
	if !res.State.GameOver {
		t.Fatal("clearing the field should end the game")
	}
	if g.state != StateCleared {
		t.Errorf("state = %s, expected %s", g.state, StateCleared)
	}

	ticks := g.Session().Ticks()
	g.Step(frame())
	if g.Session().Ticks() != ticks {
		t.Error("a finished game should not tick")
	}
}

func TestGameBallLostEndsGame(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Field.OpenBottom = true
	layout, _ := GetLayout("classic")
	g := newTestGame(t, layout, cfg)

	for range 300 {
		if g.Step(frame()).State.GameOver {
			break
		}
	}
	if g.state != StateLost {
		t.Errorf("state = %s, expected %s", g.state, StateLost)
	}
}

func TestGameResetFailure(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Timing.TickRate = 0
	g := NewWithConfig(Layout{ID: "classic", Mask: []string{"#"}}, cfg)

	// A zero runtime tick rate keeps the config's invalid one.
	err := g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("Reset error = %v, expected ErrInvalidConfig", err)
	}
	if !g.State().GameOver {
		t.Error("a failed session should report game over")
	}
	if g.Step(frame()).State.Score != 0 {
		t.Error("a failed session must not step")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start session") {
		t.Error("Render should explain the setup failure")
	}
}

func TestGameRuntimeTickRateOverridesConfig(t *testing.T) {
	layout, _ := GetLayout("classic")
	g := NewWithConfig(layout, config.DefaultBreakoutConfig())

	rt := testRuntime()
	rt.TickRate = 30
	if err := g.Reset(rt); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if g.TickRate() != 30 {
		t.Errorf("TickRate() = %d, expected 30", g.TickRate())
	}
	if g.HoldTicks() != config.DefaultBreakoutConfig().Timing.HoldTicks {
		t.Errorf("HoldTicks() = %d", g.HoldTicks())
	}
}

func TestGameRender(t *testing.T) {
	layout, _ := GetLayout("classic")
	g := newTestGame(t, layout, config.DefaultBreakoutConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected the score", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Bricks: 64") {
		t.Errorf("HUD row = %q, expected the brick count", screen.Row(0))
	}
	if !strings.ContainsRune(screen.Row(14), BallChar) {
		t.Errorf("row 14 = %q, expected the ball", screen.Row(14))
	}
	if !strings.ContainsRune(screen.Row(21), PaddleChar) {
		t.Errorf("row 21 = %q, expected the paddle", screen.Row(21))
	}
	if screen.Get(0, 10) != WallChar || screen.Get(79, 10) != WallChar {
		t.Error("side walls should be drawn at the screen edges")
	}
	if !strings.ContainsRune(screen.String(), BrickChar) {
		t.Error("bricks should be drawn")
	}
	if screen.GetCell(0, 10).Color != core.ColorWall {
		t.Error("walls should use the wall color")
	}
}

func TestGameRenderPausedOverlay(t *testing.T) {
	layout, _ := GetLayout("classic")
	g := newTestGame(t, layout, config.DefaultBreakoutConfig())
	g.Step(frame(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should draw the pause box")
	}
}

func TestGameScreenTooSmall(t *testing.T) {
	layout, _ := GetLayout("classic")
	g := NewWithConfig(layout, config.DefaultBreakoutConfig())
	if err := g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	g.Step(frame())
	if g.Session().Ticks() != 0 {
		t.Error("a game on a too small screen should not tick")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Render should ask for a bigger window")
	}
}

func TestLayoutsAreRegistered(t *testing.T) {
	for _, l := range BuiltinLayouts() {
		g, err := registry.Create(l.ID)
		if err != nil {
			t.Errorf("registry.Create(%q) failed: %v", l.ID, err)
			continue
		}
		if g.ID() != l.ID {
			t.Errorf("ID() = %q, expected %q", g.ID(), l.ID)
		}
		if _, ok := g.(registry.Timing); !ok {
			t.Errorf("%s should report its own timing", l.ID)
		}
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer func() { _ = SetDifficultyPreset("") }()

	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatalf("SetDifficultyPreset(hard) failed: %v", err)
	}
	if difficultyPreset != config.DifficultyHard {
		t.Errorf("difficultyPreset = %q", difficultyPreset)
	}
	if err := SetDifficultyPreset("insane"); err == nil {
		t.Error("an unknown preset should be rejected")
	}
	if difficultyPreset != config.DifficultyHard {
		t.Error("a rejected preset must not change the current one")
	}
}

func TestGameDifficultyScalesLaunchVelocity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	tests := []struct {
		preset string
		want   mgl64.Vec2
	}{
		{"easy", mgl64.Vec2{150, -150}},
		{"normal", mgl64.Vec2{200, -200}},
		{"hard", mgl64.Vec2{270, -270}},
	}

	layout, _ := GetLayout("classic")
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			g := New(layout)
			if err := g.SetDifficulty(tt.preset); err != nil {
				t.Fatalf("SetDifficulty failed: %v", err)
			}
			if err := g.Reset(testRuntime()); err != nil {
				t.Fatalf("Reset failed: %v", err)
			}
			if v := g.Session().Ball().Velocity; !v.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("ball velocity = %v, expected %v", v, tt.want)
			}
		})
	}
}

func TestLoadConfigWarnsAboutInvalidUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	path := filepath.Join(home, ".brickbreak", "configs", "breakout.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("ball: [not, a, map]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var buf bytes.Buffer
	SetLogger(log.New(&buf))
	defer SetLogger(nil)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Ball.Speed != config.DefaultBreakoutConfig().Ball.Speed {
		t.Errorf("Ball.Speed = %v, expected the default", cfg.Ball.Speed)
	}
	if out := buf.String(); !strings.Contains(out, "ignoring invalid config file") || !strings.Contains(out, path) {
		t.Errorf("log output = %q, expected a warning naming %s", out, path)
	}
}
