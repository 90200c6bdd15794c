package breakout

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/core"
)

// Outcome reports whether a session is still running.
type Outcome int

const (
	OutcomePlaying  Outcome = iota
	OutcomeCleared          // every brick destroyed
	OutcomeBallLost         // ball left through an open bottom
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeCleared:
		return "cleared"
	case OutcomeBallLost:
		return "ball_lost"
	default:
		return "unknown"
	}
}

// TickResult summarises one simulation step.
type TickResult struct {
	Tick       uint64
	Hits       []Hit
	Score      int
	BricksLeft int
	Outcome    Outcome
}

// Session owns everything one game needs: the world, the score and the
// immutable constants. Sessions share nothing, so several can run side by side.
type Session struct {
	cfg    config.BreakoutConfig
	layout Layout
	grid   Grid
	world  *World
	score  Scoreboard
	paddle PaddleController
	dt     float64
	tick   uint64
}

// NewSession builds the field: one paddle, one ball, the walls and the
// bricks the layout selects. Any setup failure is fatal to the session.
func NewSession(cfg config.BreakoutConfig, layout Layout) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: new session: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		layout: layout,
		grid:   ComputeGrid(cfg),
		world:  NewWorld(),
		paddle: NewPaddleController(cfg),
		dt:     cfg.Timing.TickSeconds(),
	}

	if err := s.setup(); err != nil {
		return nil, fmt.Errorf("breakout: new session: %w", err)
	}
	if err := s.world.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: new session: %w", err)
	}
	return s, nil
}

// setup spawns all entities. Walls come before bricks so contact order is stable.
func (s *Session) setup() error {
	f := s.cfg.Field
	p := s.cfg.Paddle
	b := s.cfg.Ball
	t := f.WallThickness

	if _, err := s.world.Add(Entity{
		Kind: KindPaddle,
		Box:  core.NewRect(0, f.Bottom+p.Offset, p.Width, p.Height),
	}); err != nil {
		return err
	}

	// The direction is scaled as given, not normalized: (0.5,-0.5) at 400 launches at (200,-200).
	dir := mgl64.Vec2{b.DirectionX, b.DirectionY}
	if _, err := s.world.Add(Entity{
		Kind:        KindBall,
		Box:         core.NewRect(b.StartX, b.StartY, b.Width, b.Height),
		Velocity:    dir.Mul(b.Speed),
		HasVelocity: true,
	}); err != nil {
		return err
	}

	walls := []core.Rect{
		core.NewRect(f.Left, 0, t, f.Height()+t),
		core.NewRect(f.Right, 0, t, f.Height()+t),
		core.NewRect(0, f.Top, f.Width()+t, t),
	}
	if !f.OpenBottom {
		walls = append(walls, core.NewRect(0, f.Bottom, f.Width()+t, t))
	}
	for _, box := range walls {
		if _, err := s.world.Add(Entity{Kind: KindWall, Box: box}); err != nil {
			return err
		}
	}

	for row := range s.grid.Rows {
		for col := range s.grid.Cols {
			if !s.layout.Has(row, col, s.grid.Rows, s.grid.Cols) {
				continue
			}
			x, y := s.grid.Cell(row, col)
			if _, err := s.world.Add(Entity{
				Kind: KindBrick,
				Box:  core.NewRect(x, y, s.cfg.Bricks.Width, s.cfg.Bricks.Height),
				Row:  row,
				Col:  col,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tick advances the simulation by one fixed step:
// paddle input first, then motion, then collisions.
func (s *Session) Tick(in core.PaddleInput) TickResult {
	s.tick++
	s.paddle.Update(s.world.Paddle(), in, s.dt)
	Integrate(s.world, s.dt)
	hits := Resolve(s.world, &s.score)

	return TickResult{
		Tick:       s.tick,
		Hits:       hits,
		Score:      s.score.Value(),
		BricksLeft: s.world.LiveBricks(),
		Outcome:    s.Outcome(),
	}
}

// Outcome reports whether the session has been won or lost.
func (s *Session) Outcome() Outcome {
	if s.world.LiveBricks() == 0 {
		return OutcomeCleared
	}
	if s.cfg.Field.OpenBottom && s.world.Ball().Box.Center.Y() < s.cfg.Field.Bottom {
		return OutcomeBallLost
	}
	return OutcomePlaying
}

// Score returns the number of bricks destroyed so far.
func (s *Session) Score() int {
	return s.score.Value()
}

// Ticks returns how many steps have run.
func (s *Session) Ticks() uint64 {
	return s.tick
}

// Ball returns the ball entity.
func (s *Session) Ball() *Entity {
	return s.world.Ball()
}

// Paddle returns the paddle entity.
func (s *Session) Paddle() *Entity {
	return s.world.Paddle()
}

// World exposes the entity store for rendering.
func (s *Session) World() *World {
	return s.world
}

// Bricks returns the live bricks in insertion order.
func (s *Session) Bricks() []*Entity {
	bricks := make([]*Entity, 0, s.world.LiveBricks())
	s.world.Each(func(e *Entity) bool {
		if e.Kind == KindBrick {
			bricks = append(bricks, e)
		}
		return true
	})
	return bricks
}

// Grid returns the brick grid the session was built on.
func (s *Session) Grid() Grid {
	return s.grid
}

// Layout returns the layout the session was built from.
func (s *Session) Layout() Layout {
	return s.layout
}

// Config returns the constants the session runs with.
func (s *Session) Config() config.BreakoutConfig {
	return s.cfg
}
