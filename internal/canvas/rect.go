package canvas

// Rect is an axis-aligned area of the canvas.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Grid lays out n cells of size w×h in rows of cols, separated by gap
// columns and one blank row, starting at (x, y).
func Grid(n, cols, x, y, w, h, gap int) []Rect {
	if cols <= 0 {
		cols = 1
	}
	rects := make([]Rect, n)
	for i := range rects {
		col, row := i%cols, i/cols
		rects[i] = NewRect(x+col*(w+gap), y+row*(h+1), w, h)
	}
	return rects
}
