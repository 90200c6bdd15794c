package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreak/internal/core"
	"github.com/vovakirdan/brickbreak/internal/registry"
	"github.com/vovakirdan/brickbreak/internal/storage"
)

// runGen numbers game models so stale ticks from a finished model are dropped.
var runGen atomic.Int64

// Outcome recorded when the player leaves a run that is still going.
const outcomeQuit = "quit"

// GameModel is the Bubble Tea model for one game: input, fixed ticks and rendering.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	tickRate   int
	held       *core.HeldKeys
	pending    core.InputFrame // one-shot actions for the next tick
	gameState  core.GameState
	keyMapper  *KeyMapper
	gen        int
	err        error
	quitting   bool
	backToMenu bool
	runSaved   bool
	standalone bool // quitting the game exits the program
}

// NewGameModel resets the game and prepares a model to drive it.
// A nil store disables score saving; a nil logger discards log output.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		tickRate:  cfg.TickRate,
		held:      core.NewHeldKeys(1),
		pending:   core.NewInputFrame(),
		keyMapper: NewKeyMapper(),
		gen:       int(runGen.Add(1)),
	}

	m.err = game.Reset(cfg)
	if m.err != nil {
		logger.Error("cannot start game", "game", game.ID(), "error", m.err)
		return m
	}

	if t, ok := game.(registry.Timing); ok {
		m.tickRate = t.TickRate()
		m.held = core.NewHeldKeys(t.HoldTicks())
	}
	m.gameState = game.State()

	logger.Info("game started", "game", game.ID(), "tick_rate", m.tickRate, "difficulty", difficultyOf(game))
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return tickCmd(m.tickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.finishRun(outcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu when the game is stopped
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused || m.err != nil) {
		m.finishRun(outcomeQuit)
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if IsHeld(action) {
		m.held.Press(action)
	} else if action != core.ActionNone {
		m.pending.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The simulation runs in world units, so only the view changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes one simulation tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	frame := m.pending.Clone()
	m.held.Apply(&frame)
	result := m.game.Step(frame)
	m.gameState = result.State
	m.pending.Clear()

	// A restart after game over starts a new run
	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
		m.held.Release()
		m.logger.Info("game restarted", "game", m.game.ID())
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		outcome := "game_over"
		if r, ok := m.game.(registry.Recorder); ok {
			outcome = r.Outcome()
		}
		m.finishRun(outcome)
	}

	return m, tickCmd(m.tickRate, m.gen)
}

// finishRun persists the current run once. Runs quit before scoring are not kept.
func (m *GameModel) finishRun(outcome string) {
	if m.runSaved || m.err != nil {
		return
	}
	if outcome == outcomeQuit && m.gameState.Score == 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		Layout:     m.game.ID(),
		Difficulty: difficultyOf(m.game),
		Score:      m.gameState.Score,
		Outcome:    outcome,
	}
	if r, ok := m.game.(registry.Recorder); ok {
		run.Ticks = r.Ticks()
	}

	m.logger.Info("run finished",
		"game", run.Layout,
		"score", run.Score,
		"outcome", run.Outcome,
		"ticks", run.Ticks,
	)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "game", run.Layout, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".brickbreak", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that prevented the game from starting, if any.
func (m GameModel) Err() error {
	return m.err
}

// difficultyOf returns the game's difficulty, or "normal" for untunable games.
func difficultyOf(g registry.Game) string {
	if t, ok := g.(registry.Tunable); ok {
		return t.Difficulty()
	}
	return "normal"
}

// Run plays a single game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, logger, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
