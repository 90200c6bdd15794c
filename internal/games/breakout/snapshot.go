package breakout

import "math"

// Snapshot captures the observable session state for replays and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick            uint64
	Score           int
	BricksRemaining int
	Outcome         int

	PaddleX float64
	BallX   float64
	BallY   float64
	BallVX  float64
	BallVY  float64

	// One entry per grid cell (row*Cols + col): 1 if a brick is alive there.
	BrickData []int
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	ball := s.world.Ball()
	snap := Snapshot{
		Tick:            s.tick,
		Score:           s.score.Value(),
		BricksRemaining: s.world.LiveBricks(),
		Outcome:         int(s.Outcome()),
		PaddleX:         s.world.Paddle().Box.Center.X(),
		BallX:           ball.Box.Center.X(),
		BallY:           ball.Box.Center.Y(),
		BallVX:          ball.Velocity.X(),
		BallVY:          ball.Velocity.Y(),
		BrickData:       make([]int, s.grid.Rows*s.grid.Cols),
	}

	s.world.Each(func(e *Entity) bool {
		if e.Kind == KindBrick {
			snap.BrickData[e.Row*s.grid.Cols+e.Col] = 1
		}
		return true
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome)         //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallVX)
	h = h*31 + math.Float64bits(snap.BallVY)

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
