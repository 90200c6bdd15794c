package breakout

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/core"
	"github.com/vovakirdan/brickbreak/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	WallChar   = '█'
	BrickChar  = '▓'
	FlashChar  = '░'
)

// Game states
const (
	StatePlaying = "playing"
	StatePaused  = "paused"
	StateCleared = "cleared" // every brick destroyed
	StateLost    = "lost"    // ball left through an open bottom
	StateFailed  = "failed"  // session could not be built
)

// flashTicks is how long a destroyed brick stays visible.
const flashTicks = 6

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// logger receives config warnings; it discards them until SetLogger is called.
var logger = log.New(io.Discard)

// SetLogger sets the logger used for config warnings.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on every Reset.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// LoadConfig resolves the session constants with the CLI-wide difficulty.
func LoadConfig() (config.BreakoutConfig, error) {
	return loadConfigWith(difficultyPreset)
}

func loadConfigWith(preset config.DifficultyPreset) (config.BreakoutConfig, error) {
	cfg, skipped, err := config.ResolveBreakout(configPath)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	for _, s := range skipped {
		logger.Warn("ignoring invalid config file", "path", s.Path, "error", s.Err)
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	return cfg, nil
}

// flash is a destroyed brick drawn briefly after it is gone.
type flash struct {
	box core.Rect
	ttl int
}

// Game adapts a Session to the platform: pause, restart and rendering.
type Game struct {
	layout   Layout
	override *config.BreakoutConfig
	preset   config.DifficultyPreset // empty means the CLI-wide preset

	session *Session
	state   string
	err     error
	last    TickResult
	flashes []flash

	runtime  core.RuntimeConfig
	cfg      config.BreakoutConfig
	tooSmall bool
}

// Minimum terminal size the field can be drawn in.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// New creates a game for the given layout using the loaded config.
func New(layout Layout) *Game {
	return &Game{layout: layout}
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(layout Layout, cfg config.BreakoutConfig) *Game {
	return &Game{layout: layout, override: &cfg}
}

// ID returns the layout ID, which doubles as the score table key.
func (g *Game) ID() string {
	return g.layout.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout: " + g.layout.Name
}

// Reset builds a fresh session from the config.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.flashes = g.flashes[:0]
	g.last = TickResult{}

	cfg, err := g.loadConfig()
	if err == nil {
		g.cfg = cfg
		g.session, err = NewSession(cfg, g.layout)
	}
	if err != nil {
		g.session = nil
		g.state = StateFailed
		g.err = err
		return err
	}

	g.err = nil
	g.state = StatePlaying
	return nil
}

func (g *Game) loadConfig() (config.BreakoutConfig, error) {
	var cfg config.BreakoutConfig
	if g.override != nil {
		cfg = *g.override
	} else {
		loaded, err := loadConfigWith(config.DifficultyPreset(g.Difficulty()))
		if err != nil {
			return config.BreakoutConfig{}, err
		}
		cfg = loaded
	}
	if g.runtime.TickRate > 0 {
		cfg.Timing.TickRate = g.runtime.TickRate
	}
	return cfg, nil
}

// TickRate returns the fixed simulation rate of the current session.
func (g *Game) TickRate() int {
	if g.session != nil {
		return g.cfg.Timing.TickRate
	}
	return config.DefaultBreakoutConfig().Timing.TickRate
}

// HoldTicks returns how many ticks a single key press keeps the paddle moving.
func (g *Game) HoldTicks() int {
	if g.session != nil {
		return g.cfg.Timing.HoldTicks
	}
	return config.DefaultBreakoutConfig().Timing.HoldTicks
}

// SetDifficulty picks the preset used by this game from the next Reset on.
func (g *Game) SetDifficulty(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// Difficulty returns the preset the next Reset will use.
func (g *Game) Difficulty() string {
	if g.preset != "" {
		return string(g.preset)
	}
	return string(difficultyPreset)
}

// Resize records the terminal size; the simulation pauses while it is too small.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.tooSmall = width < MinScreenW || height < MinScreenH
}

// Outcome returns how the current session ended, or "playing".
func (g *Game) Outcome() string {
	if g.session == nil {
		return StateFailed
	}
	return g.session.Outcome().String()
}

// Ticks returns the number of simulated ticks in the current session.
func (g *Game) Ticks() uint64 {
	if g.session == nil {
		return 0
	}
	return g.session.Ticks()
}

// Session returns the running session, or nil if Reset failed.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the setup error from the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Last returns the result of the most recent tick.
func (g *Game) Last() TickResult {
	return g.last
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.state != StatePlaying {
		_ = g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = StatePlaying
		case StatePlaying:
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	g.ageFlashes()
	g.last = g.session.Tick(in.Paddle())
	for _, hit := range g.last.Hits {
		if hit.Destroyed {
			g.flashes = append(g.flashes, flash{box: hit.Box, ttl: flashTicks})
		}
	}

	switch g.last.Outcome {
	case OutcomeCleared:
		g.state = StateCleared
	case OutcomeBallLost:
		g.state = StateLost
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) ageFlashes() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ttl--
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start session")
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}

	// Check for screen too small
	if g.tooSmall || g.session == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	view := newViewport(g.cfg.Field, dst.Width(), dst.Height())

	g.renderHUD(dst)
	g.renderField(dst, view)
	g.renderOverlay(dst)
}

// renderHUD draws the score, the layout name and the bricks left.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorScore)

	dst.DrawTextCentered(0, g.layout.Name)

	bricks := fmt.Sprintf("Bricks: %d", g.session.World().LiveBricks())
	dst.DrawTextColored(dst.Width()-len(bricks)-1, 0, bricks, core.ColorText)
}

// renderField draws walls, bricks, flashes, the paddle and the ball, back to front.
func (g *Game) renderField(dst *core.Screen, view viewport) {
	g.session.World().Each(func(e *Entity) bool {
		switch e.Kind {
		case KindWall:
			dst.DrawRect(view.cells(e.Box), WallChar, core.ColorWall)
		case KindBrick:
			r := view.cells(e.Box)
			if r.W > 2 {
				r.W-- // keep a visible gap between neighbours
			}
			dst.DrawRect(r, BrickChar, core.BrickColor(e.Row))
		}
		return true
	})

	for _, f := range g.flashes {
		dst.DrawRect(view.cells(f.box), FlashChar, core.ColorGray)
	}

	dst.DrawRect(view.cells(g.session.Paddle().Box), PaddleChar, core.ColorPaddle)

	bx, by := view.point(g.session.Ball().Box.Center.X(), g.session.Ball().Box.Center.Y())
	dst.SetColored(bx, by, BallChar, core.ColorBall)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateCleared:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to play again", g.session.Score())
		g.drawCenteredBox(dst, "FIELD CLEARED!", subtitle)

	case StateLost:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Score())
		g.drawCenteredBox(dst, "BALL LOST", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.CellRect{X: (w - boxW) / 2, Y: (h - boxH) / 2, W: boxW, H: boxH}

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorText)

	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.session != nil {
		score = g.session.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.state == StateCleared || g.state == StateLost || g.state == StateFailed,
		Paused:   g.state == StatePaused,
	}
}

// viewport maps world units onto terminal cells. Row 0 is reserved for the HUD.
type viewport struct {
	minX, maxY    float64
	scaleX        float64 // cells per world unit
	scaleY        float64
	width, height int
}

func newViewport(f config.FieldConfig, width, height int) viewport {
	half := f.WallThickness / 2
	minX, maxX := f.Left-half, f.Right+half
	minY, maxY := f.Bottom-half, f.Top+half
	return viewport{
		minX:   minX,
		maxY:   maxY,
		scaleX: float64(width) / (maxX - minX),
		scaleY: float64(height-1) / (maxY - minY),
		width:  width,
		height: height,
	}
}

// point returns the cell containing a world position.
func (v viewport) point(x, y float64) (int, int) {
	cx := int(math.Floor((x - v.minX) * v.scaleX))
	cy := 1 + int(math.Floor((v.maxY-y)*v.scaleY))
	return core.Clamp(cx, 0, v.width-1), core.Clamp(cy, 1, v.height-1)
}

// cells returns the cell rectangle covering a world rectangle, at least one cell.
func (v viewport) cells(r core.Rect) core.CellRect {
	x0, y0 := v.point(r.Left(), r.Top())
	x1, y1 := v.point(r.Right(), r.Bottom())
	return core.CellRect{
		X: x0,
		Y: y0,
		W: core.Max(1, x1-x0),
		H: core.Max(1, y1-y0),
	}
}

// Register every bundled layout with the registry
func init() {
	for _, l := range BuiltinLayouts() {
		layout := l
		registry.Register(layout.ID, func() registry.Game {
			return New(layout)
		})
	}
}
