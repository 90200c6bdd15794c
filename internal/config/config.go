// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for brickbreak.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid breakout config")

// BreakoutConfig contains all tunable constants for one session.
// Values are read once at startup and never change during a session.
type BreakoutConfig struct {
	Field  FieldConfig  `yaml:"field"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Bricks BricksConfig `yaml:"bricks"`
	Timing TimingConfig `yaml:"timing"`
}

// FieldConfig defines the play-field walls in world units (y-up, origin at center).
type FieldConfig struct {
	Left          float64 `yaml:"left"`
	Right         float64 `yaml:"right"`
	Top           float64 `yaml:"top"`
	Bottom        float64 `yaml:"bottom"`
	WallThickness float64 `yaml:"wall_thickness"`
	OpenBottom    bool    `yaml:"open_bottom"` // No bottom wall; losing the ball ends the session
}

// Width returns the distance between the left and right wall centers.
func (f FieldConfig) Width() float64 {
	return f.Right - f.Left
}

// Height returns the distance between the bottom and top wall centers.
func (f FieldConfig) Height() float64 {
	return f.Top - f.Bottom
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`  // World units per second
	Offset float64 `yaml:"offset"` // Height of the paddle center above the bottom wall
}

// BallConfig defines the ball and its launch velocity.
type BallConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	DirectionX float64 `yaml:"direction_x"`
	DirectionY float64 `yaml:"direction_y"`
}

// BricksConfig defines the brick grid geometry.
type BricksConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gap          float64 `yaml:"gap"`            // Between neighbouring bricks
	GapToPaddle  float64 `yaml:"gap_to_paddle"`  // From the bottom wall to the lowest row
	GapToCeiling float64 `yaml:"gap_to_ceiling"` // From the top row to the top wall
	GapToSides   float64 `yaml:"gap_to_sides"`   // From the side walls to the outer columns
}

// TimingConfig defines the fixed simulation rate.
type TimingConfig struct {
	TickRate  int `yaml:"tick_rate"`  // Fixed ticks per second
	HoldTicks int `yaml:"hold_ticks"` // Ticks a key press keeps a direction held
}

// TickSeconds returns the fixed tick duration in seconds.
func (t TimingConfig) TickSeconds() float64 {
	return 1.0 / float64(t.TickRate)
}

// Validate checks the invariants the simulation relies on.
func (c BreakoutConfig) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"field.wall_thickness", c.Field.WallThickness},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.speed", c.Paddle.Speed},
		{"ball.width", c.Ball.Width},
		{"ball.height", c.Ball.Height},
		{"ball.speed", c.Ball.Speed},
		{"bricks.width", c.Bricks.Width},
		{"bricks.height", c.Bricks.Height},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.Field.Right <= c.Field.Left {
		return fmt.Errorf("%w: field.right (%g) must exceed field.left (%g)", ErrInvalidConfig, c.Field.Right, c.Field.Left)
	}
	if c.Field.Top <= c.Field.Bottom {
		return fmt.Errorf("%w: field.top (%g) must exceed field.bottom (%g)", ErrInvalidConfig, c.Field.Top, c.Field.Bottom)
	}
	if c.Paddle.Width+c.Field.WallThickness >= c.Field.Width() {
		return fmt.Errorf("%w: paddle.width %g does not fit the field", ErrInvalidConfig, c.Paddle.Width)
	}
	if c.Ball.DirectionX == 0 && c.Ball.DirectionY == 0 {
		return fmt.Errorf("%w: ball direction must be non-zero", ErrInvalidConfig)
	}
	if c.Bricks.Gap < 0 || c.Bricks.GapToPaddle < 0 || c.Bricks.GapToCeiling < 0 || c.Bricks.GapToSides < 0 {
		return fmt.Errorf("%w: brick gaps must not be negative", ErrInvalidConfig)
	}
	if c.Timing.TickRate <= 0 {
		return fmt.Errorf("%w: timing.tick_rate must be positive, got %d", ErrInvalidConfig, c.Timing.TickRate)
	}
	if c.Timing.HoldTicks < 0 {
		return fmt.Errorf("%w: timing.hold_ticks must not be negative, got %d", ErrInvalidConfig, c.Timing.HoldTicks)
	}
	return nil
}
