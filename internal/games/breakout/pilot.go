package breakout

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/brickbreak/internal/core"
)

// Pilot chooses the paddle input for the next tick of a headless session.
type Pilot func(s *Session) core.PaddleInput

var pilots = map[string]Pilot{
	"none":   func(*Session) core.PaddleInput { return core.PaddleInput{} },
	"left":   func(*Session) core.PaddleInput { return core.PaddleInput{MoveLeft: true} },
	"right":  func(*Session) core.PaddleInput { return core.PaddleInput{MoveRight: true} },
	"follow": FollowBall,
}

// ParsePilot returns the named pilot: none, left, right or follow.
func ParsePilot(name string) (Pilot, error) {
	p, ok := pilots[name]
	if !ok {
		return nil, fmt.Errorf("breakout: unknown pilot %q (want one of %v)", name, PilotNames())
	}
	return p, nil
}

// PilotNames lists the available pilots in sorted order.
func PilotNames() []string {
	names := make([]string, 0, len(pilots))
	for name := range pilots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FollowBall steers the paddle under the ball, idling inside a quarter paddle width.
func FollowBall(s *Session) core.PaddleInput {
	paddle := s.Paddle().Box
	dx := s.Ball().Box.Center.X() - paddle.Center.X()
	deadZone := paddle.Size.X() / 4

	switch {
	case dx > deadZone:
		return core.PaddleInput{MoveRight: true}
	case dx < -deadZone:
		return core.PaddleInput{MoveLeft: true}
	}
	return core.PaddleInput{}
}

// Simulate ticks s with pilot until the session ends or maxTicks more ticks have run.
// observe, if non-nil, sees every tick result. The last result is returned.
func Simulate(s *Session, pilot Pilot, maxTicks uint64, observe func(TickResult)) TickResult {
	last := TickResult{
		Tick:       s.Ticks(),
		Score:      s.Score(),
		BricksLeft: s.World().LiveBricks(),
		Outcome:    s.Outcome(),
	}

	for range maxTicks {
		if last.Outcome != OutcomePlaying {
			break
		}
		last = s.Tick(pilot(s))
		if observe != nil {
			observe(last)
		}
	}
	return last
}
