package game

import (
	"fmt"
	"math"
)

// SpawnGrid is the set of spawn candidates on a map: cell centres spaced
// two radii apart whose circle touches no wall. Picks are removed from the
// set, so two bodies never share a cell.
type SpawnGrid struct {
	radius     float64
	step       float64
	cols, rows int
	free       []bool
	boundary   []bool
	alive      []bool
}

// NewSpawnGrid classifies every grid cell of the layout as free or blocked.
func NewSpawnGrid(layout *MapLayout, radius float64) *SpawnGrid {
	step := 2 * radius
	g := &SpawnGrid{
		radius: radius,
		step:   step,
		cols:   gridSpan(layout.Arena.Width, radius, step),
		rows:   gridSpan(layout.Arena.Height, radius, step),
	}

	n := g.cols * g.rows
	g.free = make([]bool, n)
	g.boundary = make([]bool, n)
	g.alive = make([]bool, n)

	for i := 0; i < n; i++ {
		g.free[i] = !layout.Collides(g.center(i), radius)
		g.alive[i] = g.free[i]
	}
	for i := 0; i < n; i++ {
		g.boundary[i] = g.free[i] && g.touchesBlocked(i)
	}
	return g
}

// gridSpan is the number of cell centres in [radius, size-radius].
func gridSpan(size, radius, step float64) int {
	if step <= 0 || size < 2*radius {
		return 0
	}
	return int(math.Floor((size-2*radius)/step)) + 1
}

func (g *SpawnGrid) center(i int) Vec {
	cx, cy := i%g.cols, i/g.cols
	return Vec{
		X: g.radius + float64(cx)*g.step,
		Y: g.radius + float64(cy)*g.step,
	}
}

// touchesBlocked reports whether a 4-neighbour is a wall cell. Cells past
// the grid edge count as blocked.
func (g *SpawnGrid) touchesBlocked(i int) bool {
	cx, cy := i%g.cols, i/g.cols
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := cx+d[0], cy+d[1]
		if nx < 0 || nx >= g.cols || ny < 0 || ny >= g.rows {
			return true
		}
		if !g.free[ny*g.cols+nx] {
			return true
		}
	}
	return false
}

// Remaining returns how many free cells are still unclaimed.
func (g *SpawnGrid) Remaining() int {
	count := 0
	for _, a := range g.alive {
		if a {
			count++
		}
	}
	return count
}

// Take claims up to n free cells at random. When fewer remain it returns
// all of them together with ErrInsufficientSpace.
func (g *SpawnGrid) Take(n int, rng Rand) ([]Vec, error) {
	return g.take(n, false, rng)
}

// TakeBoundary is like Take but only considers free cells next to a wall or
// the arena edge.
func (g *SpawnGrid) TakeBoundary(n int, rng Rand) ([]Vec, error) {
	return g.take(n, true, rng)
}

func (g *SpawnGrid) take(n int, boundaryOnly bool, rng Rand) ([]Vec, error) {
	if n <= 0 {
		return nil, nil
	}

	candidates := make([]int, 0, len(g.alive))
	for i, a := range g.alive {
		if a && (!boundaryOnly || g.boundary[i]) {
			candidates = append(candidates, i)
		}
	}

	k := n
	if k > len(candidates) {
		k = len(candidates)
	}
	picked := make([]Vec, 0, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		cell := candidates[i]
		g.alive[cell] = false
		picked = append(picked, g.center(cell))
	}

	if k < n {
		return picked, fmt.Errorf("%w: requested %d spawn points, %d available", ErrInsufficientSpace, n, k)
	}
	return picked, nil
}

// SelectSpawns picks count distinct, non-colliding spawn points on the map.
func SelectSpawns(layout *MapLayout, count int, radius float64, rng Rand) ([]Vec, error) {
	return NewSpawnGrid(layout, radius).Take(count, rng)
}
