package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultBreakoutConfig().Validate(); err != nil {
		t.Fatalf("DefaultBreakoutConfig().Validate() = %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := ParseBreakout(DefaultYAML())
	if err != nil {
		t.Fatalf("ParseBreakout(embedded) failed: %v", err)
	}
	if cfg != DefaultBreakoutConfig() {
		t.Errorf("embedded YAML differs from DefaultBreakoutConfig():\n got  %+v\n want %+v", cfg, DefaultBreakoutConfig())
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := ParseBreakout([]byte("ball:\n  speed: 250\nfield:\n  open_bottom: true\n"))
	if err != nil {
		t.Fatalf("ParseBreakout() failed: %v", err)
	}
	if cfg.Ball.Speed != 250 {
		t.Errorf("Ball.Speed = %v, expected 250", cfg.Ball.Speed)
	}
	if !cfg.Field.OpenBottom {
		t.Error("Field.OpenBottom should be true")
	}
	if cfg.Paddle.Width != DefaultBreakoutConfig().Paddle.Width {
		t.Errorf("unspecified fields should keep defaults, Paddle.Width = %v", cfg.Paddle.Width)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
	}{
		{"zero ball size", func(c *BreakoutConfig) { c.Ball.Width = 0 }},
		{"negative paddle speed", func(c *BreakoutConfig) { c.Paddle.Speed = -1 }},
		{"inverted field", func(c *BreakoutConfig) { c.Field.Left, c.Field.Right = 10, -10 }},
		{"flat field", func(c *BreakoutConfig) { c.Field.Top = c.Field.Bottom }},
		{"paddle wider than field", func(c *BreakoutConfig) { c.Paddle.Width = 2000 }},
		{"zero direction", func(c *BreakoutConfig) { c.Ball.DirectionX, c.Ball.DirectionY = 0, 0 }},
		{"negative gap", func(c *BreakoutConfig) { c.Bricks.Gap = -1 }},
		{"zero tick rate", func(c *BreakoutConfig) { c.Timing.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadBreakoutCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("paddle:\n  speed: 800\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() failed: %v", err)
	}
	if cfg.Paddle.Speed != 800 {
		t.Errorf("Paddle.Speed = %v, expected 800", cfg.Paddle.Speed)
	}
}

func TestLoadBreakoutErrors(t *testing.T) {
	if _, err := LoadBreakout(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadBreakout() should fail for a missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ball:\n  width: -3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, err := LoadBreakout(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadBreakout() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestResolveBreakoutReportsSkippedFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	userPath := filepath.Join(home, ".brickbreak", "configs", "breakout.yaml")
	if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(userPath, []byte("paddle:\n  speed: -1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, skipped, err := ResolveBreakout("")
	if err != nil {
		t.Fatalf("ResolveBreakout() failed: %v", err)
	}
	if cfg != DefaultBreakoutConfig() {
		t.Error("a broken user config should fall back to the defaults")
	}
	if len(skipped) != 1 {
		t.Fatalf("skipped = %v, expected one file", skipped)
	}
	if skipped[0].Path != userPath || !errors.Is(skipped[0].Err, ErrInvalidConfig) {
		t.Errorf("skipped[0] = %+v, expected %s with ErrInvalidConfig", skipped[0], userPath)
	}

	// A valid local file is used after the broken user file is skipped.
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "breakout.yaml"), []byte("paddle:\n  speed: 700\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, skipped, err = ResolveBreakout("")
	if err != nil {
		t.Fatalf("ResolveBreakout() failed: %v", err)
	}
	if cfg.Paddle.Speed != 700 || len(skipped) != 1 {
		t.Errorf("Paddle.Speed = %v with %d skipped, expected 700 with 1", cfg.Paddle.Speed, len(skipped))
	}
}

func TestMarshalRoundTripKeepsDefaults(t *testing.T) {
	data, err := MarshalBreakout(DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("MarshalBreakout() failed: %v", err)
	}
	cfg, err := ParseBreakout(data)
	if err != nil {
		t.Fatalf("ParseBreakout() failed: %v", err)
	}
	if cfg != DefaultBreakoutConfig() {
		t.Error("marshalled defaults should parse back to the defaults")
	}
}

func TestPresets(t *testing.T) {
	base := DefaultBreakoutConfig()

	easy := base
	ApplyBreakoutPreset(&easy, DifficultyEasy)
	if easy.Ball.Speed >= base.Ball.Speed {
		t.Errorf("easy should slow the ball, got %v", easy.Ball.Speed)
	}

	hard := base
	ApplyBreakoutPreset(&hard, DifficultyHard)
	if hard.Ball.Speed <= base.Ball.Speed {
		t.Errorf("hard should speed up the ball, got %v", hard.Ball.Speed)
	}
	if hard.Ball.DirectionX != base.Ball.DirectionX || hard.Ball.DirectionY != base.Ball.DirectionY {
		t.Error("presets must not change the launch direction")
	}

	normal := base
	ApplyBreakoutPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal preset should leave the config unchanged")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
