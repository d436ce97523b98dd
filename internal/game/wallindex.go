package game

import "math"

// wallCellSize is the broad-phase cell edge. Roughly a room door plus a body.
const wallCellSize = 128.0

// wallIndex is a fixed-size uniform grid over the arena. Each cell lists the
// walls whose rectangle overlaps it.
type wallIndex struct {
	cols, rows int
	cells      [][]int
}

func newWallIndex(arena Arena, walls []Rect) *wallIndex {
	cols := int(math.Ceil(arena.Width/wallCellSize)) + 1
	rows := int(math.Ceil(arena.Height/wallCellSize)) + 1
	idx := &wallIndex{
		cols:  cols,
		rows:  rows,
		cells: make([][]int, cols*rows),
	}
	for i, w := range walls {
		minCX, minCY := idx.cell(w.X, w.Y)
		maxCX, maxCY := idx.cell(w.MaxX(), w.MaxY())
		for cy := minCY; cy <= maxCY; cy++ {
			for cx := minCX; cx <= maxCX; cx++ {
				n := cy*cols + cx
				idx.cells[n] = append(idx.cells[n], i)
			}
		}
	}
	return idx
}

// cell maps a world point to clamped grid coordinates.
func (g *wallIndex) cell(x, y float64) (int, int) {
	cx := int(math.Floor(x / wallCellSize))
	cy := int(math.Floor(y / wallCellSize))
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

// query calls fn for every wall in cells overlapping the circle's bounding
// box. A wall may be visited more than once. Iteration stops when fn returns true.
func (g *wallIndex) query(c Vec, radius float64, fn func(i int) bool) bool {
	minCX, minCY := g.cell(c.X-radius, c.Y-radius)
	maxCX, maxCY := g.cell(c.X+radius, c.Y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, i := range g.cells[cy*g.cols+cx] {
				if fn(i) {
					return true
				}
			}
		}
	}
	return false
}
