// Package registry provides a global registry for game factories.
// Each brick layout registers itself as a playable game in init(),
// letting the platform discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/brickbreak/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "classic", "pyramid").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh session.
	// Called once at start and again when restarting.
	// An error means the session could not be set up and must not be stepped.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Left, Pause, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Timing is implemented by games that pick their own simulation rate.
// The platform drives its tick loop and key-hold window from it when present.
type Timing interface {
	TickRate() int
	HoldTicks() int
}

// Resizable is implemented by games that need to know the terminal size
// without being reset.
type Resizable interface {
	Resize(width, height int)
}

// Tunable is implemented by games with a per-instance difficulty.
type Tunable interface {
	SetDifficulty(preset string) error
	Difficulty() string
}

// Recorder is implemented by games that report how a run ended,
// so the platform can persist it.
type Recorder interface {
	Outcome() string
	Ticks() uint64
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Order int
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
	order   int
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Get title by creating a temporary instance
	entries[id] = entry{
		factory: f,
		title:   f().Title(),
		order:   len(entries),
	}
}

// List returns information about all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{
			ID:    id,
			Title: e.title,
			Order: e.order,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
