package game

import "math"

// Vec is a point or displacement in world units.
type Vec struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Arena is the fixed rectangular play area, anchored at the origin.
type Arena struct {
	Width  float64 `yaml:"width" json:"width" msgpack:"width"`
	Height float64 `yaml:"height" json:"height" msgpack:"height"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

func (r Rect) MaxX() float64 { return r.X + r.W }

func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Center() Vec { return Vec{r.X + r.W/2, r.Y + r.H/2} }

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	const eps = 1e-9
	return o.X >= r.X-eps && o.Y >= r.Y-eps && o.MaxX() <= r.MaxX()+eps && o.MaxY() <= r.MaxY()+eps
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// CircleRectOverlap reports whether a circle overlaps a rectangle. A circle
// touching the rectangle at exactly radius does not overlap.
func CircleRectOverlap(c Vec, radius float64, r Rect) bool {
	closestX := clamp(c.X, r.X, r.MaxX())
	closestY := clamp(c.Y, r.Y, r.MaxY())
	dx := c.X - closestX
	dy := c.Y - closestY
	return dx*dx+dy*dy < radius*radius
}

// clamp limits value to the range [lo, hi].
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
