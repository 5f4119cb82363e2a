package term

import (
	"math"

	"github.com/stoneng/stoneng/internal/core/ecs"
)

// Grid maps between the virtual window (pixels, origin top-left), world
// space (y up, shifted by the view) and terminal cells (row 0 on top).
type Grid struct {
	Window     ecs.WindowSize
	Cols, Rows int
}

// CellSize returns the window pixels covered by one cell.
func (g Grid) CellSize() (w, h float32) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0
	}
	return g.Window.W / float32(g.Cols), g.Window.H / float32(g.Rows)
}

// WorldToCell projects a world position into the terminal. ok is false when
// it falls outside the screen.
func (g Grid) WorldToCell(x, y float32, view ecs.View) (col, row int, ok bool) {
	cw, ch := g.CellSize()
	if cw <= 0 || ch <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor(float64((x - view.X) / cw)))
	row = g.Rows - 1 - int(math.Floor(float64((y-view.Y)/ch)))
	return col, row, col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// CellToWindow returns the window-pixel centre of a cell.
func (g Grid) CellToWindow(col, row int) (x, y float64) {
	cw, ch := g.CellSize()
	return (float64(col) + 0.5) * float64(cw), (float64(row) + 0.5) * float64(ch)
}
