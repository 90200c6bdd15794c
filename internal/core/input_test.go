package core

import "testing"

func TestInputFramePaddle(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    PaddleInput
	}{
		{"nothing", nil, PaddleInput{}},
		{"left", []Action{ActionLeft}, PaddleInput{MoveLeft: true}},
		{"right", []Action{ActionRight}, PaddleInput{MoveRight: true}},
		{"both", []Action{ActionLeft, ActionRight}, PaddleInput{MoveLeft: true, MoveRight: true}},
		{"unrelated", []Action{ActionPause}, PaddleInput{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			if got := f.Paddle(); got != tc.want {
				t.Errorf("Paddle() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestInputFrameClearClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionLeft) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionLeft) {
		t.Error("zero-value frame should have no actions")
	}
	zero.Set(ActionRight)
	if !zero.Has(ActionRight) {
		t.Error("Set on zero-value frame should work")
	}
}

func TestHeldKeys(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(ActionLeft)

	for i := 0; i < 3; i++ {
		f := NewInputFrame()
		h.Apply(&f)
		if !f.Has(ActionLeft) {
			t.Fatalf("tick %d: left should still be held", i)
		}
	}

	f := NewInputFrame()
	h.Apply(&f)
	if f.Has(ActionLeft) {
		t.Error("left should be released after the hold window")
	}
}

func TestHeldKeysBothDirections(t *testing.T) {
	h := NewHeldKeys(2)
	h.Press(ActionLeft)
	h.Press(ActionRight)
	h.Press(ActionPause) // ignored

	f := NewInputFrame()
	h.Apply(&f)
	if in := f.Paddle(); !in.MoveLeft || !in.MoveRight {
		t.Errorf("both directions should be held, got %+v", in)
	}

	h.Release()
	f = NewInputFrame()
	h.Apply(&f)
	if in := f.Paddle(); in.MoveLeft || in.MoveRight {
		t.Errorf("Release should drop both directions, got %+v", in)
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || ActionRight.String() != "Right" {
		t.Error("movement actions should have readable names")
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown action should report Unknown")
	}
}
