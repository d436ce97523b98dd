package game

// Door is the opening left in a split wall.
type Door struct {
	Rect
	// Parent is the rectangle whose split produced the wall holding this door.
	Parent Rect `json:"parent" msgpack:"parent"`
	// Vertical is true when the door sits in a vertical wall.
	Vertical bool `json:"vertical" msgpack:"vertical"`
}

// MapLayout is the generated, read-only geometry of a match.
type MapLayout struct {
	Arena Arena  `json:"arena" msgpack:"arena"`
	Walls []Rect `json:"walls" msgpack:"walls"`
	Doors []Door `json:"doors" msgpack:"doors"`
	Rooms []Rect `json:"rooms" msgpack:"rooms"`

	index *wallIndex
}

// NewMapLayout builds a layout from explicit walls.
func NewMapLayout(arena Arena, walls []Rect) *MapLayout {
	m := &MapLayout{
		Arena: arena,
		Walls: walls,
	}
	m.index = newWallIndex(arena, walls)
	return m
}

// Collides reports whether a circle at c overlaps any wall.
func (m *MapLayout) Collides(c Vec, radius float64) bool {
	if m.index == nil {
		for _, w := range m.Walls {
			if CircleRectOverlap(c, radius, w) {
				return true
			}
		}
		return false
	}
	return m.index.query(c, radius, func(i int) bool {
		return CircleRectOverlap(c, radius, m.Walls[i])
	})
}

// InBounds reports whether a circle at c lies fully inside the arena.
func (m *MapLayout) InBounds(c Vec, radius float64) bool {
	return c.X >= radius && c.X <= m.Arena.Width-radius &&
		c.Y >= radius && c.Y <= m.Arena.Height-radius
}
