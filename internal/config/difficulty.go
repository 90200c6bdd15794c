package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
// Presets rescale speeds once at load time; they never change a running session.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScale holds the speed multipliers applied by a preset.
type presetScale struct {
	ball   float64
	paddle float64
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {ball: 0.75, paddle: 1.2},
	DifficultyNormal: {ball: 1.0, paddle: 1.0},
	DifficultyHard:   {ball: 1.35, paddle: 0.9},
}

// ParsePreset converts a CLI string to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(s)
	if _, ok := presetScales[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Only speed magnitudes change; the ball's launch direction is kept.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Ball.Speed *= scale.ball
	cfg.Paddle.Speed *= scale.paddle
}
