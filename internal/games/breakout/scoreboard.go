package breakout

// Scoreboard counts destroyed bricks for one session.
// The resolver is its only writer.
type Scoreboard struct {
	value int
}

// Increment adds one point and returns the new total.
func (s *Scoreboard) Increment() int {
	s.value++
	return s.value
}

// Reset sets the score back to zero.
func (s *Scoreboard) Reset() {
	s.value = 0
}

// Value returns the current score.
func (s *Scoreboard) Value() int {
	return s.value
}
