package breakout

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickbreak/internal/config"
	"github.com/vovakirdan/brickbreak/internal/core"
)

func newTestSession(t *testing.T, cfg config.BreakoutConfig, layoutID string) *Session {
	t.Helper()
	layout, err := GetLayout(layoutID)
	if err != nil {
		t.Fatalf("GetLayout(%q) failed: %v", layoutID, err)
	}
	s, err := NewSession(cfg, layout)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSessionSetup(t *testing.T) {
	s := newTestSession(t, config.DefaultBreakoutConfig(), "classic")
	w := s.World()

	counts := map[Kind]int{KindPaddle: 1, KindBall: 1, KindWall: 4, KindBrick: 64}
	for kind, want := range counts {
		if got := w.Count(kind); got != want {
			t.Errorf("Count(%s) = %d, expected %d", kind, got, want)
		}
	}

	if c := s.Paddle().Box.Center; c != (mgl64.Vec2{0, -240}) {
		t.Errorf("paddle centre = %v, expected (0, -240)", c)
	}
	if c := s.Ball().Box.Center; c != (mgl64.Vec2{0, -50}) {
		t.Errorf("ball centre = %v, expected (0, -50)", c)
	}

	if v := s.Ball().Velocity; v != (mgl64.Vec2{200, -200}) {
		t.Errorf("ball velocity = %v, expected (200, -200)", v)
	}

	if s.Score() != 0 || s.Ticks() != 0 || s.Outcome() != OutcomePlaying {
		t.Error("a new session should start at score 0, tick 0, playing")
	}
}

func TestNewSessionWallsMatchField(t *testing.T) {
	s := newTestSession(t, config.DefaultBreakoutConfig(), "classic")

	var walls []core.Rect
	s.World().Each(func(e *Entity) bool {
		if e.Kind == KindWall {
			walls = append(walls, e.Box)
		}
		return true
	})

	expected := []core.Rect{
		core.NewRect(-450, 0, 10, 610),
		core.NewRect(450, 0, 10, 610),
		core.NewRect(0, 300, 910, 10),
		core.NewRect(0, -300, 910, 10),
	}
	if len(walls) != len(expected) {
		t.Fatalf("got %d walls, expected %d", len(walls), len(expected))
	}
	for i := range expected {
		if walls[i] != expected[i] {
			t.Errorf("wall %d = %+v, expected %+v", i, walls[i], expected[i])
		}
	}
}

func TestNewSessionOpenBottom(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Field.OpenBottom = true
	s := newTestSession(t, cfg, "classic")

	if got := s.World().Count(KindWall); got != 3 {
		t.Errorf("Count(wall) = %d, expected 3 with an open bottom", got)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Ball.Width = -1

	_, err := NewSession(cfg, Layout{ID: "classic", Mask: []string{"#"}})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewSession error = %v, expected ErrInvalidConfig", err)
	}
}

func TestSessionBothKeysKeepPaddleStill(t *testing.T) {
	s := newTestSession(t, config.DefaultBreakoutConfig(), "classic")

	for range 10 {
		s.Tick(core.PaddleInput{MoveLeft: true, MoveRight: true})
	}
	if x := s.Paddle().Box.Center.X(); x != 0 {
		t.Errorf("paddle x = %v, expected 0", x)
	}
	if s.Ticks() != 10 {
		t.Errorf("Ticks() = %d, expected 10", s.Ticks())
	}
}

func TestSessionTickOrderPaddleBeforeBall(t *testing.T) {
	s := newTestSession(t, config.DefaultBreakoutConfig(), "classic")
	dt := config.DefaultBreakoutConfig().Timing.TickSeconds()
	ball := s.Ball().Box.Center

	res := s.Tick(core.PaddleInput{MoveRight: true})

	if res.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", res.Tick)
	}
	if x := s.Paddle().Box.Center.X(); !mgl64.FloatEqual(x, 500*dt) {
		t.Errorf("paddle x = %v, expected %v", x, 500*dt)
	}
	moved := s.Ball().Box.Center.Sub(ball)
	if !moved.ApproxEqualThreshold(mgl64.Vec2{200 * dt, -200 * dt}, 1e-9) {
		t.Errorf("ball moved %v, expected %v", moved, mgl64.Vec2{200 * dt, -200 * dt})
	}
}

func TestSessionInvariantsOverLongRun(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	s := newTestSession(t, cfg, "classic")
	pc := NewPaddleController(cfg)
	rng := rand.New(rand.NewSource(42))

	total := s.World().LiveBricks()
	speed2 := s.Ball().Velocity.Dot(s.Ball().Velocity)
	lastScore := 0

	for i := range 20000 {
		res := s.Tick(core.PaddleInput{MoveLeft: rng.Intn(2) == 0, MoveRight: rng.Intn(2) == 0})

		if res.Score < lastScore {
			t.Fatalf("tick %d: score decreased from %d to %d", i, lastScore, res.Score)
		}
		lastScore = res.Score

		if res.Score != total-res.BricksLeft {
			t.Fatalf("tick %d: score %d does not match %d destroyed bricks", i, res.Score, total-res.BricksLeft)
		}

		for _, h := range res.Hits {
			if h.Destroyed && h.Kind != KindBrick {
				t.Fatalf("tick %d: destroyed a %s", i, h.Kind)
			}
		}

		x := s.Paddle().Box.Center.X()
		if x < pc.MinX || x > pc.MaxX {
			t.Fatalf("tick %d: paddle x = %v out of bounds", i, x)
		}

		v := s.Ball().Velocity
		if v.Dot(v) != speed2 {
			t.Fatalf("tick %d: speed changed, |v|^2 = %v, expected %v", i, v.Dot(v), speed2)
		}

		if res.Outcome != OutcomePlaying {
			if res.Outcome != OutcomeCleared || res.BricksLeft != 0 {
				t.Fatalf("tick %d: unexpected outcome %s with %d bricks", i, res.Outcome, res.BricksLeft)
			}
			break
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := newTestSession(t, config.DefaultBreakoutConfig(), "pyramid")
		for i := range 600 {
			in := core.PaddleInput{MoveLeft: i%7 < 3, MoveRight: i%5 < 2}
			s.Tick(in)
		}
		return s.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: run1 %+v, run2 %+v", snap1, snap2)
	}
}

func TestSnapshotTracksBricks(t *testing.T) {
	s := newTestSession(t, config.DefaultBreakoutConfig(), "checker")
	snap := s.Snapshot()

	alive := 0
	for _, v := range snap.BrickData {
		alive += v
	}
	if alive != 32 || snap.BricksRemaining != 32 {
		t.Errorf("snapshot bricks = %d/%d, expected 32", alive, snap.BricksRemaining)
	}

	before := snap.Hash()
	s.Tick(core.PaddleInput{})
	after := s.Snapshot()
	if after.Hash() == before {
		t.Error("hash should change after a tick")
	}
}

func TestSessionBallLostThroughOpenBottom(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Field.OpenBottom = true
	s := newTestSession(t, cfg, "classic")

	var res TickResult
	for range 300 {
		res = s.Tick(core.PaddleInput{})
		if res.Outcome != OutcomePlaying {
			break
		}
	}
	if res.Outcome != OutcomeBallLost {
		t.Fatalf("outcome = %s, expected ball_lost", res.Outcome)
	}
	if s.Ball().Box.Center.Y() >= cfg.Field.Bottom {
		t.Errorf("ball y = %v, expected below %v", s.Ball().Box.Center.Y(), cfg.Field.Bottom)
	}
}

func TestSessionClosedBottomKeepsBall(t *testing.T) {
	s := newTestSession(t, config.DefaultBreakoutConfig(), "classic")

	for i := range 300 {
		res := s.Tick(core.PaddleInput{})
		if res.Outcome == OutcomeBallLost {
			t.Fatalf("tick %d: ball lost with a closed bottom", i)
		}
	}
	if y := s.Ball().Box.Center.Y(); y < -300 {
		t.Errorf("ball y = %v escaped the field", y)
	}
}

func TestSessionEmptyLayoutIsCleared(t *testing.T) {
	s, err := NewSession(config.DefaultBreakoutConfig(), Layout{ID: "empty", Mask: []string{"."}})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.World().LiveBricks() != 0 {
		t.Fatalf("LiveBricks() = %d, expected 0", s.World().LiveBricks())
	}

	res := s.Tick(core.PaddleInput{})
	if res.Outcome != OutcomeCleared {
		t.Errorf("outcome = %s, expected cleared", res.Outcome)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomePlaying:  "playing",
		OutcomeCleared:  "cleared",
		OutcomeBallLost: "ball_lost",
		Outcome(99):     "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, expected %q", int(o), got, want)
		}
	}
}
