// Package core provides fundamental types and utilities for the brick breaker.
// It contains no terminal dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidRect is returned when a rectangle has a non-positive width or height.
var ErrInvalidRect = errors.New("core: rectangle size must be positive")

// Rect represents an axis-aligned bounding box used for collision detection.
// Coordinates are world units in a y-up frame.
type Rect struct {
	Center mgl64.Vec2 // Center position
	Size   mgl64.Vec2 // Full width and height
}

// NewRect creates a new rectangle centered at (x, y) with the given full size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Center: mgl64.Vec2{x, y}, Size: mgl64.Vec2{w, h}}
}

// Validate reports whether the rectangle satisfies w > 0 and h > 0.
func (r Rect) Validate() error {
	if !(r.Size.X() > 0) || !(r.Size.Y() > 0) {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidRect, r.Size.X(), r.Size.Y())
	}
	return nil
}

// Min returns the bottom-left corner.
func (r Rect) Min() mgl64.Vec2 {
	return r.Center.Sub(r.Size.Mul(0.5))
}

// Max returns the top-right corner.
func (r Rect) Max() mgl64.Vec2 {
	return r.Center.Add(r.Size.Mul(0.5))
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.Center.X() - r.Size.X()/2
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Center.X() + r.Size.X()/2
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Center.Y() - r.Size.Y()/2
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Center.Y() + r.Size.Y()/2
}

// Side identifies which face of the obstacle a moving box struck.
// Sides are relative to the obstacle: SideLeft means the mover came from
// the left and hit the obstacle's left face.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
	SideInside
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	case SideTop:
		return "Top"
	case SideBottom:
		return "Bottom"
	case SideInside:
		return "Inside"
	default:
		return "Unknown"
	}
}

// Overlaps reports whether two rectangles overlap.
// Bounds are inclusive: boxes that exactly touch count as overlapping.
// The test uses the same edges as ClassifyOverlap so the two always agree.
func Overlaps(a, b Rect) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin.X() <= bMax.X() && aMax.X() >= bMin.X() &&
		aMin.Y() <= bMax.Y() && aMax.Y() >= bMin.Y()
}

// ClassifyOverlap tests a against b and, on overlap, reports which face of b
// the box a most likely crossed. The axis with the shallower penetration wins
// since that is the axis a entered along most recently; ties go to x.
// An axis where a does not straddle exactly one of b's edges has no side of
// its own, and if neither axis does the result is SideInside.
func ClassifyOverlap(a, b Rect) (Side, bool) {
	if !Overlaps(a, b) {
		return SideInside, false
	}

	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	xSide, xDepth := classifyAxis(aMin.X(), aMax.X(), bMin.X(), bMax.X(), SideLeft, SideRight)
	ySide, yDepth := classifyAxis(aMin.Y(), aMax.Y(), bMin.Y(), bMax.Y(), SideBottom, SideTop)

	if yDepth < xDepth {
		return ySide, true
	}
	return xSide, true
}

// classifyAxis classifies overlap along one axis. low is the side reported
// when a crosses b's low edge, high when it crosses b's high edge.
// The returned depth is +Inf when a crosses neither edge alone.
func classifyAxis(aMin, aMax, bMin, bMax float64, low, high Side) (Side, float64) {
	switch {
	case aMin < bMin && aMax >= bMin && aMax < bMax:
		return low, aMax - bMin
	case aMin > bMin && aMin <= bMax && aMax > bMax:
		return high, bMax - aMin
	default:
		return SideInside, math.Inf(1)
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
