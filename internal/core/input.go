package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left
	ActionRight          // D, Right arrow - move paddle right
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after the session ends
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PaddleInput is the only input the paddle controller consumes:
// which movement directions are currently held.
type PaddleInput struct {
	MoveLeft  bool
	MoveRight bool
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were active during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Paddle extracts the held movement directions.
func (f InputFrame) Paddle() PaddleInput {
	return PaddleInput{
		MoveLeft:  f.Has(ActionLeft),
		MoveRight: f.Has(ActionRight),
	}
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// HeldKeys turns discrete key presses into held directions.
// Terminals report key presses (and auto-repeat) but never key releases, so a
// direction counts as held for holdTicks ticks after its most recent press.
// Both directions may be held at once.
type HeldKeys struct {
	holdTicks int
	left      int // ticks remaining
	right     int
}

// NewHeldKeys creates a tracker that holds each press for holdTicks ticks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HeldKeys{holdTicks: holdTicks}
}

// Press registers a key press for a movement action. Other actions are ignored.
func (h *HeldKeys) Press(a Action) {
	switch a {
	case ActionLeft:
		h.left = h.holdTicks
	case ActionRight:
		h.right = h.holdTicks
	}
}

// Release drops both directions immediately.
func (h *HeldKeys) Release() {
	h.left = 0
	h.right = 0
}

// Apply marks currently held directions on the frame and ages the holds by one tick.
func (h *HeldKeys) Apply(f *InputFrame) {
	if h.left > 0 {
		f.Set(ActionLeft)
		h.left--
	}
	if h.right > 0 {
		f.Set(ActionRight)
		h.right--
	}
}
