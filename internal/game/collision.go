package game

import "math"

// ClampPosition clamps a position within arena bounds, accounting for body radius.
func ClampPosition(p Vec, radius float64, arena Arena) Vec {
	return Vec{
		X: clamp(p.X, radius, arena.Width-radius),
		Y: clamp(p.Y, radius, arena.Height-radius),
	}
}

// Resolve moves a body of the given radius from cur towards target and
// returns where it ends up. Axes are resolved independently, X first, so a
// body pushed diagonally into a wall slides along it. The move is split into
// steps no longer than the radius so fast bodies cannot pass through walls.
// cur is expected to be a non-colliding position.
func (m *MapLayout) Resolve(cur, target Vec, radius float64) Vec {
	delta := target.Sub(cur)
	if delta.IsZero() {
		return cur
	}

	steps := 1
	if radius > 0 {
		steps = int(math.Ceil(math.Max(math.Abs(delta.X), math.Abs(delta.Y)) / radius))
		if steps < 1 {
			steps = 1
		}
	}
	step := delta.Scale(1 / float64(steps))

	pos := cur
	blockX, blockY := step.X == 0, step.Y == 0
	for i := 0; i < steps && !(blockX && blockY); i++ {
		if !blockX {
			next, ok := m.tryAxis(pos, Vec{pos.X + step.X, pos.Y}, radius)
			pos = next
			blockX = !ok
		}
		if !blockY {
			next, ok := m.tryAxis(pos, Vec{pos.X, pos.Y + step.Y}, radius)
			pos = next
			blockY = !ok
		}
	}
	return pos
}

// tryAxis applies a single-axis candidate. The candidate is clamped to the
// arena; it is rejected when it hits a wall or when clamping left no movement.
func (m *MapLayout) tryAxis(pos, candidate Vec, radius float64) (Vec, bool) {
	clamped := ClampPosition(candidate, radius, m.Arena)
	if m.Collides(clamped, radius) {
		return pos, false
	}
	return clamped, clamped == candidate
}
