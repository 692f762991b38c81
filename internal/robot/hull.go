package robot

import "strings"

// Color of a hull panel.
type Color int64

// Panel colors as exchanged with the controlling program.
const (
	Black Color = 0
	White Color = 1
)

// Point is a panel position, x grows to the right and y grows upwards.
type Point struct {
	X, Y int
}

// Direction the robot is facing.
type Direction int

// Directions in clockwise order.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// Turn returns the direction after a 90 degree turn.
func (d Direction) Turn(right bool) Direction {
	if right {
		return (d + 1) % 4
	}
	return (d + 3) % 4
}

// Move returns the neighbour of the point in the direction.
func (d Direction) Move(p Point) Point {
	switch d {
	case Up:
		p.Y++
	case Right:
		p.X++
	case Down:
		p.Y--
	case Left:
		p.X--
	}
	return p
}

// Hull is the grid of panels. Panels that were never touched are black.
type Hull struct {
	panels  map[Point]Color
	painted map[Point]struct{}
}

// NewHull returns an all black hull.
func NewHull() *Hull {
	return &Hull{
		panels:  map[Point]Color{},
		painted: map[Point]struct{}{},
	}
}

// Color returns the color of the panel.
func (h *Hull) Color(p Point) Color {
	return h.panels[p]
}

// Paint sets the color of the panel and marks it as painted.
func (h *Hull) Paint(p Point, c Color) {
	h.panels[p] = c
	h.painted[p] = struct{}{}
}

// Painted returns the number of panels that were painted at least once,
// regardless of their current color.
func (h *Hull) Painted() int {
	return len(h.painted)
}

// Render draws the bounding box of all known panels, top row first. White
// panels are drawn as '#' and black panels as '.'.
func (h *Hull) Render() string {
	if len(h.panels) == 0 {
		return ""
	}

	first := true
	var minX, maxX, minY, maxY int
	for p := range h.panels {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	var sb strings.Builder
	for y := maxY; y >= minY; y-- {
		for x := minX; x <= maxX; x++ {
			if h.panels[Point{X: x, Y: y}] == White {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
