package breakout

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/core"
)

// Integrate advances every moving entity by its velocity over dt seconds.
// It knows nothing about collisions; overlaps are resolved afterwards.
func Integrate(w *World, dt float64) {
	w.Each(func(e *Entity) bool {
		if e.HasVelocity {
			e.Box.Center = e.Box.Center.Add(e.Velocity.Mul(dt))
		}
		return true
	})
}

// PaddleController moves the paddle horizontally and keeps it between the walls.
type PaddleController struct {
	Speed float64 // units per second
	MinX  float64 // lowest allowed paddle centre x
	MaxX  float64 // highest allowed paddle centre x
}

// NewPaddleController derives the travel range from the field walls so the
// paddle's edge stops at the inner face of each side wall.
func NewPaddleController(cfg config.BreakoutConfig) PaddleController {
	margin := (cfg.Field.WallThickness + cfg.Paddle.Width) / 2
	return PaddleController{
		Speed: cfg.Paddle.Speed,
		MinX:  cfg.Field.Left + margin,
		MaxX:  cfg.Field.Right - margin,
	}
}

// Direction converts held keys to -1, 0 or +1. Holding both cancels out.
func (pc PaddleController) Direction(in core.PaddleInput) float64 {
	dir := 0.0
	if in.MoveLeft {
		dir -= 1
	}
	if in.MoveRight {
		dir += 1
	}
	return dir
}

// Update moves the paddle for one tick. Only the x coordinate changes.
func (pc PaddleController) Update(p *Entity, in core.PaddleInput, dt float64) {
	x := p.Box.Center.X() + pc.Direction(in)*pc.Speed*dt
	p.Box.Center[0] = core.ClampF(x, pc.MinX, pc.MaxX)
}

// Hit describes one ball contact found by Resolve.
type Hit struct {
	Entity    EntityID
	Kind      Kind
	Box       core.Rect // collidable's rectangle at contact
	Side      core.Side
	Reflected bool // velocity component was flipped
	Destroyed bool // entity was a brick and is gone
}

// Resolve tests the ball against every live collidable in insertion order,
// reflecting its velocity and destroying bricks it touches.
// A destroyed brick is removed immediately, so later tests in the same pass skip it.
func Resolve(w *World, score *Scoreboard) []Hit {
	ball := w.Ball()
	if ball == nil {
		return nil
	}

	var hits []Hit
	w.Each(func(e *Entity) bool {
		if !e.Collidable() {
			return true
		}
		side, ok := core.ClassifyOverlap(ball.Box, e.Box)
		if !ok {
			return true
		}

		hit := Hit{
			Entity:    e.ID,
			Kind:      e.Kind,
			Box:       e.Box,
			Side:      side,
			Reflected: reflect(&ball.Velocity, side),
		}
		if e.Destructible() && w.Remove(e.ID) {
			score.Increment()
			hit.Destroyed = true
		}
		hits = append(hits, hit)
		return true
	})
	return hits
}

// reflect flips the velocity component that points into the collidable.
// A component already moving away is left alone, so repeated contacts
// with the same surface never flip it back.
func reflect(v *mgl64.Vec2, side core.Side) bool {
	switch side {
	case core.SideLeft:
		if v[0] > 0 {
			v[0] = -v[0]
			return true
		}
	case core.SideRight:
		if v[0] < 0 {
			v[0] = -v[0]
			return true
		}
	case core.SideTop:
		if v[1] < 0 {
			v[1] = -v[1]
			return true
		}
	case core.SideBottom:
		if v[1] > 0 {
			v[1] = -v[1]
			return true
		}
	}
	return false
}
