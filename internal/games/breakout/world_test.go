package breakout

import (
	"errors"
	"testing"

	"github.com/vovakirdan/brickbreak/internal/core"
)

func TestWorldAddAssignsSequentialIDs(t *testing.T) {
	w := NewWorld()
	kinds := []Kind{KindPaddle, KindBall, KindWall, KindBrick, KindBrick}

	for i, k := range kinds {
		id, err := w.Add(Entity{Kind: k, Box: core.NewRect(0, 0, 10, 10)})
		if err != nil {
			t.Fatalf("Add(%s) failed: %v", k, err)
		}
		if id != EntityID(i+1) {
			t.Errorf("Add(%s) id = %d, expected %d", k, id, i+1)
		}
	}

	if w.LiveBricks() != 2 {
		t.Errorf("LiveBricks() = %d, expected 2", w.LiveBricks())
	}
	if w.Count(KindWall) != 1 {
		t.Errorf("Count(wall) = %d, expected 1", w.Count(KindWall))
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestWorldRejectsSecondSingleton(t *testing.T) {
	tests := []struct {
		kind Kind
		want error
	}{
		{KindPaddle, ErrDuplicatePaddle},
		{KindBall, ErrDuplicateBall},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			w := NewWorld()
			if _, err := w.Add(Entity{Kind: tc.kind, Box: core.NewRect(0, 0, 1, 1)}); err != nil {
				t.Fatalf("first Add failed: %v", err)
			}
			_, err := w.Add(Entity{Kind: tc.kind, Box: core.NewRect(0, 0, 1, 1)})
			if !errors.Is(err, tc.want) {
				t.Errorf("second Add error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestWorldRejectsInvalidRect(t *testing.T) {
	w := NewWorld()
	_, err := w.Add(Entity{Kind: KindBrick, Box: core.NewRect(0, 0, 0, 10)})
	if !errors.Is(err, core.ErrInvalidRect) {
		t.Errorf("Add() error = %v, expected ErrInvalidRect", err)
	}
	if w.Count(KindBrick) != 0 {
		t.Error("a rejected entity must not be stored")
	}
}

func TestWorldValidateMissingSingletons(t *testing.T) {
	w := NewWorld()
	if err := w.Validate(); !errors.Is(err, ErrMissingPaddle) {
		t.Errorf("empty world: Validate() = %v, expected ErrMissingPaddle", err)
	}

	if _, err := w.Add(Entity{Kind: KindPaddle, Box: core.NewRect(0, 0, 1, 1)}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := w.Validate(); !errors.Is(err, ErrMissingBall) {
		t.Errorf("no ball: Validate() = %v, expected ErrMissingBall", err)
	}
}

func TestWorldRemove(t *testing.T) {
	w := NewWorld()
	paddle, _ := w.Add(Entity{Kind: KindPaddle, Box: core.NewRect(0, 0, 1, 1)})
	ball, _ := w.Add(Entity{Kind: KindBall, Box: core.NewRect(0, 0, 1, 1)})
	brick, _ := w.Add(Entity{Kind: KindBrick, Box: core.NewRect(0, 0, 1, 1)})

	if w.Remove(paddle) || w.Remove(ball) {
		t.Error("paddle and ball must not be removable")
	}
	if !w.Remove(brick) {
		t.Fatal("Remove(brick) should succeed")
	}
	if w.Remove(brick) {
		t.Error("removing a brick twice should fail")
	}
	if w.Get(brick) != nil {
		t.Error("Get() should not return a removed entity")
	}
	if w.LiveBricks() != 0 {
		t.Errorf("LiveBricks() = %d, expected 0", w.LiveBricks())
	}

	next, _ := w.Add(Entity{Kind: KindBrick, Box: core.NewRect(0, 0, 1, 1)})
	if next == brick {
		t.Error("IDs must never be reused")
	}
}

func TestWorldEachSkipsEntitiesRemovedDuringIteration(t *testing.T) {
	w := NewWorld()
	var ids []EntityID
	for range 4 {
		id, _ := w.Add(Entity{Kind: KindBrick, Box: core.NewRect(0, 0, 1, 1)})
		ids = append(ids, id)
	}

	var visited []EntityID
	w.Each(func(e *Entity) bool {
		visited = append(visited, e.ID)
		if e.ID == ids[0] {
			w.Remove(ids[2])
		}
		return true
	})

	expected := []EntityID{ids[0], ids[1], ids[3]}
	if len(visited) != len(expected) {
		t.Fatalf("visited %v, expected %v", visited, expected)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("visited[%d] = %d, expected %d", i, visited[i], expected[i])
		}
	}
}

func TestWorldEachStops(t *testing.T) {
	w := NewWorld()
	for range 3 {
		_, _ = w.Add(Entity{Kind: KindWall, Box: core.NewRect(0, 0, 1, 1)})
	}
	n := 0
	w.Each(func(*Entity) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("Each should stop after fn returns false, visited %d", n)
	}
}
