package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightBlue
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Role colors, after the original sprite tints.
const (
	ColorPaddle = ColorBlue
	ColorBall   = ColorBrightRed
	ColorWall   = ColorBrightRed
	ColorBrick  = ColorBrightBlue
	ColorText   = ColorBrightBlue
	ColorScore  = ColorBrightRed
)

// BrickRowColors tints brick rows from the bottom up, cycling.
var BrickRowColors = []Color{
	ColorBrightBlue,
	ColorCyan,
	ColorGreen,
	ColorYellow,
	ColorOrange,
	ColorMagenta,
}

// BrickColor returns the tint for the given brick row.
func BrickColor(row int) Color {
	if row < 0 {
		row = -row
	}
	return BrickRowColors[row%len(BrickRowColors)]
}
