package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-towerdefense/internal/canvas"
	"github.com/vovakirdan/tui-towerdefense/internal/sim"
)

// Platform slot layout in cells.
const (
	slotW   = 11
	slotH   = 3
	slotGap = 1
)

// fieldLayout returns the slot rectangles for a level, relative to the
// top-left corner of the field.
func fieldLayout(level sim.Level, n int) []canvas.Rect {
	return canvas.Grid(n, level.Columns, 0, 0, slotW, slotH, slotGap)
}

// fieldSize returns the canvas size needed for the slots.
func fieldSize(rects []canvas.Rect) (int, int) {
	w, h := 0, 0
	for _, r := range rects {
		w = max(w, r.Right())
		h = max(h, r.Bottom())
	}
	return w, h
}

// drawField draws the platform grid. cursor < 0 hides the cursor.
func drawField(c *canvas.Canvas, w *sim.World, cursor int) []canvas.Rect {
	rects := fieldLayout(w.Level, len(w.Platforms))
	fw, fh := fieldSize(rects)
	c.Resize(fw, fh)

	for i, p := range w.Platforms {
		r := rects[i]
		boxColor := canvas.ColorGray
		if p.Occupied() {
			boxColor = canvas.ColorGreen
		}
		if i == cursor {
			boxColor = canvas.ColorBrightYellow
		}
		c.DrawBox(r, boxColor)

		_, cy := r.Center()
		if t, ok := p.Tower(); ok {
			label := fmt.Sprintf("%s %s", t.Glyph, t.Name)
			c.DrawTextCentered(r, cy, truncate(label, r.W-2), canvas.ColorBrightWhite)
		} else {
			c.DrawTextCentered(r, cy, fmt.Sprintf("#%d", i+1), canvas.ColorGray)
		}
	}
	return rects
}

// moveCursor moves a grid cursor by (dx, dy), staying inside n cells.
func moveCursor(cursor, n, cols, dx, dy int) int {
	if n == 0 {
		return 0
	}
	if cols <= 0 {
		cols = 1
	}
	col, row := cursor%cols, cursor/cols
	col += dx
	row += dy
	if col < 0 || col >= cols || row < 0 {
		return cursor
	}
	next := row*cols + col
	if next >= n {
		return cursor
	}
	return next
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
