package breakout

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickbreak/internal/core"
)

// Setup invariant violations. Any of these is fatal to the session.
var (
	ErrMissingPaddle   = errors.New("breakout: world has no paddle")
	ErrMissingBall     = errors.New("breakout: world has no ball")
	ErrDuplicatePaddle = errors.New("breakout: world already has a paddle")
	ErrDuplicateBall   = errors.New("breakout: world already has a ball")
)

// EntityID identifies an entity for the lifetime of a World. IDs start at 1
// and are never reused, so a removed brick can never come back.
type EntityID uint32

// Kind tags what an entity is.
type Kind int

const (
	KindPaddle Kind = iota
	KindBall
	KindWall
	KindBrick
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPaddle:
		return "paddle"
	case KindBall:
		return "ball"
	case KindWall:
		return "wall"
	case KindBrick:
		return "brick"
	default:
		return "unknown"
	}
}

// Entity is a plain data record. Only the fields relevant to its Kind are used.
type Entity struct {
	ID          EntityID
	Kind        Kind
	Box         core.Rect
	Velocity    mgl64.Vec2
	HasVelocity bool // Advanced by the integrator each tick
	Row, Col    int  // Grid cell, bricks only (row 0 is the lowest row)

	alive bool
}

// Collidable reports whether the ball is tested against this entity.
func (e *Entity) Collidable() bool {
	return e.Kind != KindBall
}

// Destructible reports whether a hit removes this entity.
func (e *Entity) Destructible() bool {
	return e.Kind == KindBrick
}

// Alive reports whether the entity is still part of the world.
func (e *Entity) Alive() bool {
	return e.alive
}

// World is an arena owning every entity of one session.
// Entities are kept in insertion order; removal only marks them dead.
type World struct {
	entities []*Entity
	byID     map[EntityID]*Entity
	nextID   EntityID
	paddle   *Entity
	ball     *Entity
	bricks   int // live bricks
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		byID:   make(map[EntityID]*Entity),
		nextID: 1,
	}
}

// Add validates and inserts an entity, returning its new ID.
// A second paddle or ball is rejected.
func (w *World) Add(e Entity) (EntityID, error) {
	if err := e.Box.Validate(); err != nil {
		return 0, fmt.Errorf("breakout: add %s: %w", e.Kind, err)
	}
	switch e.Kind {
	case KindPaddle:
		if w.paddle != nil {
			return 0, ErrDuplicatePaddle
		}
	case KindBall:
		if w.ball != nil {
			return 0, ErrDuplicateBall
		}
	}

	ent := e
	ent.ID = w.nextID
	ent.alive = true
	w.nextID++

	w.entities = append(w.entities, &ent)
	w.byID[ent.ID] = &ent

	switch ent.Kind {
	case KindPaddle:
		w.paddle = &ent
	case KindBall:
		w.ball = &ent
	case KindBrick:
		w.bricks++
	}
	return ent.ID, nil
}

// Remove deletes an entity by ID. The paddle and ball cannot be removed.
// Returns false if the entity does not exist, is already gone, or is a singleton.
func (w *World) Remove(id EntityID) bool {
	e, ok := w.byID[id]
	if !ok || !e.alive || e == w.paddle || e == w.ball {
		return false
	}
	e.alive = false
	delete(w.byID, id)
	if e.Kind == KindBrick {
		w.bricks--
	}
	return true
}

// Get returns a live entity by ID, or nil.
func (w *World) Get(id EntityID) *Entity {
	return w.byID[id]
}

// Each calls fn for every live entity in insertion order until fn returns false.
// Entities removed during iteration are skipped if not yet visited.
func (w *World) Each(fn func(e *Entity) bool) {
	for _, e := range w.entities {
		if !e.alive {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Paddle returns the paddle singleton.
func (w *World) Paddle() *Entity {
	return w.paddle
}

// Ball returns the ball singleton.
func (w *World) Ball() *Entity {
	return w.ball
}

// LiveBricks returns the number of bricks not yet destroyed.
func (w *World) LiveBricks() int {
	return w.bricks
}

// Count returns the number of live entities of the given kind.
func (w *World) Count(kind Kind) int {
	n := 0
	w.Each(func(e *Entity) bool {
		if e.Kind == kind {
			n++
		}
		return true
	})
	return n
}

// Validate checks that the singletons a tick requires are present.
func (w *World) Validate() error {
	if w.paddle == nil {
		return ErrMissingPaddle
	}
	if w.ball == nil {
		return ErrMissingBall
	}
	return nil
}
