package game

import "math"

// GenerateMap partitions the arena into rooms separated by walls, each wall
// holding exactly one door. Rectangles are split across their longer side at
// a position drawn from the middle third. A split never places a wall over
// an existing door, so every room stays reachable. The same rng stream
// always yields the same layout.
func GenerateMap(arena Arena, cfg MapGenConfig, rng Rand) (*MapLayout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &mapGenerator{cfg: cfg, rng: rng}
	queue := []Rect{{X: 0, Y: 0, W: arena.Width, H: arena.Height}}
	roomCount := 1

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		if roomCount >= cfg.MaxRooms {
			g.rooms = append(g.rooms, r)
			continue
		}
		a, b, ok := g.split(r)
		if !ok {
			g.rooms = append(g.rooms, r)
			continue
		}
		roomCount++
		queue = append(queue, a, b)
	}

	layout := NewMapLayout(arena, g.walls)
	layout.Doors = g.doors
	layout.Rooms = g.rooms
	return layout, nil
}

type mapGenerator struct {
	cfg   MapGenConfig
	rng   Rand
	walls []Rect
	doors []Door
	rooms []Rect
}

type interval struct{ lo, hi float64 }

func (g *mapGenerator) split(r Rect) (Rect, Rect, bool) {
	vertical := r.W > r.H
	if r.W == r.H {
		vertical = g.rng.Intn(2) == 0
	}
	if a, b, ok := g.splitAxis(r, vertical); ok {
		return a, b, true
	}
	return g.splitAxis(r, !vertical)
}

// splitAxis splits r with a vertical wall (x = s) or a horizontal one (y = s).
func (g *mapGenerator) splitAxis(r Rect, vertical bool) (Rect, Rect, bool) {
	t := g.cfg.WallThickness
	minRoom := g.cfg.MinRoomSize

	start, size := r.Y, r.H
	wallStart, wallLen := r.X, r.W
	if vertical {
		start, size = r.X, r.W
		wallStart, wallLen = r.Y, r.H
	}
	if size < 2*minRoom || wallLen < g.cfg.DoorSize+t {
		return Rect{}, Rect{}, false
	}

	allowed := []interval{{
		lo: start + math.Max(minRoom, size/3),
		hi: start + math.Min(size-minRoom, 2*size/3),
	}}
	for _, d := range g.doors {
		if f, ok := blockedBy(d, r, vertical, t); ok {
			allowed = subtract(allowed, f)
		}
	}
	s, ok := g.pick(allowed)
	if !ok {
		return Rect{}, Rect{}, false
	}

	// Door offset keeps half a wall of clearance from each end.
	doorLo := wallStart + t/2
	doorHi := wallStart + wallLen - t/2 - g.cfg.DoorSize
	doorAt := doorLo + g.rng.Float64()*(doorHi-doorLo)
	doorAt = clamp(doorAt, doorLo, doorHi)

	var a, b Rect
	if vertical {
		g.addWall(Rect{X: s - t/2, Y: wallStart, W: t, H: doorAt - wallStart})
		g.addWall(Rect{X: s - t/2, Y: doorAt + g.cfg.DoorSize, W: t, H: wallStart + wallLen - doorAt - g.cfg.DoorSize})
		g.doors = append(g.doors, Door{
			Rect:     Rect{X: s - t/2, Y: doorAt, W: t, H: g.cfg.DoorSize},
			Parent:   r,
			Vertical: true,
		})
		a = Rect{X: r.X, Y: r.Y, W: s - r.X, H: r.H}
		b = Rect{X: s, Y: r.Y, W: r.MaxX() - s, H: r.H}
	} else {
		g.addWall(Rect{X: wallStart, Y: s - t/2, W: doorAt - wallStart, H: t})
		g.addWall(Rect{X: doorAt + g.cfg.DoorSize, Y: s - t/2, W: wallStart + wallLen - doorAt - g.cfg.DoorSize, H: t})
		g.doors = append(g.doors, Door{
			Rect:   Rect{X: doorAt, Y: s - t/2, W: g.cfg.DoorSize, H: t},
			Parent: r,
		})
		a = Rect{X: r.X, Y: r.Y, W: r.W, H: s - r.Y}
		b = Rect{X: r.X, Y: s, W: r.W, H: r.MaxY() - s}
	}
	return a, b, true
}

func (g *mapGenerator) addWall(w Rect) {
	if w.W > 0 && w.H > 0 {
		g.walls = append(g.walls, w)
	}
}

// blockedBy returns the split positions that would put the new wall's band
// over door d. Only doors in walls perpendicular to the new wall and lying on
// r's boundary can be touched by it.
func blockedBy(d Door, r Rect, vertical bool, t float64) (interval, bool) {
	const eps = 1e-6
	if d.Vertical == vertical {
		return interval{}, false
	}
	if vertical {
		line := d.Y + d.H/2
		if math.Abs(line-r.Y) > eps && math.Abs(line-r.MaxY()) > eps {
			return interval{}, false
		}
		return interval{lo: d.X - t/2, hi: d.MaxX() + t/2}, true
	}
	line := d.X + d.W/2
	if math.Abs(line-r.X) > eps && math.Abs(line-r.MaxX()) > eps {
		return interval{}, false
	}
	return interval{lo: d.Y - t/2, hi: d.MaxY() + t/2}, true
}

// subtract removes the open interval f from every interval in set.
func subtract(set []interval, f interval) []interval {
	out := set[:0:0]
	for _, iv := range set {
		if f.hi <= iv.lo || f.lo >= iv.hi {
			out = append(out, iv)
			continue
		}
		if f.lo > iv.lo {
			out = append(out, interval{iv.lo, f.lo})
		}
		if f.hi < iv.hi {
			out = append(out, interval{f.hi, iv.hi})
		}
	}
	return out
}

// pick draws a point uniformly over the total length of set.
func (g *mapGenerator) pick(set []interval) (float64, bool) {
	total := 0.0
	for _, iv := range set {
		total += iv.hi - iv.lo
	}
	if total <= 0 {
		return 0, false
	}
	u := g.rng.Float64() * total
	for _, iv := range set {
		l := iv.hi - iv.lo
		if u <= l {
			return iv.lo + u, true
		}
		u -= l
	}
	last := set[len(set)-1]
	return last.hi, true
}
