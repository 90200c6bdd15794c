package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default configuration: the classic
// 900x600 field with a 120x20 paddle and a 30x30 ball.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{
			Left:          -450,
			Right:         450,
			Top:           300,
			Bottom:        -300,
			WallThickness: 10,
		},
		Paddle: PaddleConfig{
			Width:  120,
			Height: 20,
			Speed:  500,
			Offset: 60,
		},
		Ball: BallConfig{
			Width:      30,
			Height:     30,
			Speed:      400,
			StartX:     0,
			StartY:     -50,
			DirectionX: 0.5,
			DirectionY: -0.5,
		},
		Bricks: BricksConfig{
			Width:        100,
			Height:       30,
			Gap:          5,
			GapToPaddle:  270,
			GapToCeiling: 20,
			GapToSides:   20,
		},
		Timing: TimingConfig{
			TickRate:  60,
			HoldTicks: 8,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
