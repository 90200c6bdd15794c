// Package breakout implements a brick breaker: a paddle, one ball, four walls
// and a grid of bricks simulated on a fixed timestep in world units.
package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickbreak/internal/config"
)

// Layout is an ASCII mask laid over the brick grid.
// '#' places a brick, anything else leaves the cell empty.
// The first mask line is the top row of the grid.
// Masks are stretched or squeezed to the grid computed from the field size,
// so one layout works for any field configuration.
type Layout struct {
	ID   string
	Name string
	Mask []string
}

// Has reports whether the grid cell (row, col) holds a brick.
// row 0 is the lowest grid row, matching the world's y-up frame.
func (l Layout) Has(row, col, rows, cols int) bool {
	if len(l.Mask) == 0 || rows <= 0 || cols <= 0 {
		return false
	}
	top := rows - 1 - row
	line := l.Mask[top*len(l.Mask)/rows]
	if len(line) == 0 {
		return false
	}
	i := col * len(line) / cols
	return line[i] == '#'
}

// Grid is the brick arrangement derived from the field and brick sizes.
type Grid struct {
	Rows, Cols int
	OriginX    float64 // centre x of column 0
	OriginY    float64 // centre y of row 0
	StepX      float64 // brick width plus gap
	StepY      float64 // brick height plus gap
}

// ComputeGrid fits as many bricks as possible between the side gaps and
// between the paddle gap and the ceiling gap.
func ComputeGrid(cfg config.BreakoutConfig) Grid {
	b := cfg.Bricks
	f := cfg.Field

	totalW := f.Width() - 2*b.GapToSides
	totalH := f.Height() - b.GapToCeiling - b.GapToPaddle

	g := Grid{
		OriginX: f.Left + b.GapToSides + b.Width/2,
		OriginY: f.Bottom + b.GapToPaddle + b.Height/2,
		StepX:   b.Width + b.Gap,
		StepY:   b.Height + b.Gap,
	}
	if totalW > 0 {
		g.Cols = int(math.Floor(totalW / g.StepX))
	}
	if totalH > 0 {
		g.Rows = int(math.Floor(totalH / g.StepY))
	}
	return g
}

// Cell returns the brick centre for a grid cell.
func (g Grid) Cell(row, col int) (x, y float64) {
	return g.OriginX + float64(col)*g.StepX, g.OriginY + float64(row)*g.StepY
}

// builtinLayouts holds the bundled layouts in menu order.
var builtinLayouts = []Layout{
	{
		ID:   "classic",
		Name: "Classic",
		Mask: []string{"#"},
	},
	{
		ID:   "pyramid",
		Name: "Pyramid",
		Mask: []string{
			"...##...",
			"..####..",
			".######.",
			"########",
		},
	},
	{
		ID:   "checker",
		Name: "Checkerboard",
		Mask: []string{
			"#.#.#.#.",
			".#.#.#.#",
		},
	},
	{
		ID:   "striped",
		Name: "Stripes",
		Mask: []string{
			"########",
			"........",
			"########",
			"........",
			"########",
			"........",
			"########",
			"........",
		},
	},
	{
		ID:   "diamond",
		Name: "Diamond",
		Mask: []string{
			"...##...",
			"..####..",
			".######.",
			"########",
			".######.",
			"..####..",
			"...##...",
			"........",
		},
	},
}

// BuiltinLayouts returns all bundled layouts.
func BuiltinLayouts() []Layout {
	out := make([]Layout, len(builtinLayouts))
	copy(out, builtinLayouts)
	return out
}

// GetLayout returns a bundled layout by ID.
func GetLayout(id string) (Layout, error) {
	for _, l := range builtinLayouts {
		if l.ID == id {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("breakout: unknown layout %q", id)
}

// Count returns how many bricks the layout places on the grid.
func (l Layout) Count(g Grid) int {
	n := 0
	for row := range g.Rows {
		for col := range g.Cols {
			if l.Has(row, col, g.Rows, g.Cols) {
				n++
			}
		}
	}
	return n
}
