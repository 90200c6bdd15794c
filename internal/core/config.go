package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to adapt to screen size and to fix the tick duration.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Overrides the configured ticks per second when positive
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// A zero TickRate keeps the rate from the game's own config.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
