package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same point", Vec{0, 0}, Vec{0, 0}, 0},
		{"horizontal", Vec{0, 0}, Vec{3, 0}, 3},
		{"vertical", Vec{0, 0}, Vec{0, 4}, 4},
		{"diagonal 3-4-5", Vec{0, 0}, Vec{3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), 0.001)
		})
	}
}

func TestCircleRectOverlap(t *testing.T) {
	wall := Rect{X: 100, Y: 100, W: 50, H: 50}

	tests := []struct {
		name     string
		center   Vec
		radius   float64
		expected bool
	}{
		{"center inside", Vec{120, 120}, 5, true},
		{"touching left face exactly", Vec{80, 120}, 20, false},
		{"just inside left face", Vec{80.5, 120}, 20, true},
		{"far away", Vec{0, 0}, 20, false},
		{"near corner but outside", Vec{85, 85}, 20, false},
		{"overlapping corner", Vec{90, 90}, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CircleRectOverlap(tt.center, tt.radius, wall))
		})
	}
}

func TestClampPosition(t *testing.T) {
	arena := Arena{Width: 1000, Height: 500}

	tests := []struct {
		name     string
		in       Vec
		expected Vec
	}{
		{"inside", Vec{500, 250}, Vec{500, 250}},
		{"left of arena", Vec{-10, 250}, Vec{20, 250}},
		{"below arena", Vec{500, 900}, Vec{500, 480}},
		{"corner", Vec{2000, -5}, Vec{980, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampPosition(tt.in, 20, arena))
		})
	}
}

func wallLayout(walls ...Rect) *MapLayout {
	return NewMapLayout(Arena{Width: 1000, Height: 1000}, walls)
}

func TestResolve_FreeMove(t *testing.T) {
	layout := wallLayout()

	got := layout.Resolve(Vec{100, 100}, Vec{150, 130}, 20)
	assert.InDelta(t, 150, got.X, 1e-9)
	assert.InDelta(t, 130, got.Y, 1e-9)
}

func TestResolve_StopsBeforeWall(t *testing.T) {
	layout := wallLayout(Rect{X: 200, Y: 0, W: 20, H: 1000})

	got := layout.Resolve(Vec{150, 500}, Vec{260, 500}, 20)
	assert.False(t, layout.Collides(got, 20), "body must not overlap the wall")
	assert.Greater(t, got.X, 150.0, "body should advance towards the wall")
	assert.LessOrEqual(t, got.X, 180.0)
	assert.Equal(t, 500.0, got.Y)
}

func TestResolve_TouchingWallIsAllowed(t *testing.T) {
	layout := wallLayout(Rect{X: 200, Y: 0, W: 20, H: 1000})

	got := layout.Resolve(Vec{100, 500}, Vec{180, 500}, 20)
	assert.InDelta(t, 180, got.X, 1e-9)
}

func TestResolve_SlidesAlongWall(t *testing.T) {
	layout := wallLayout(Rect{X: 200, Y: 0, W: 20, H: 1000})

	got := layout.Resolve(Vec{150, 500}, Vec{260, 600}, 20)
	assert.False(t, layout.Collides(got, 20))
	assert.LessOrEqual(t, got.X, 180.0)
	assert.InDelta(t, 600, got.Y, 1e-9, "blocked X must not stop Y movement")
}

func TestResolve_DiagonalIntoWallKeepsFreeAxis(t *testing.T) {
	layout := wallLayout(
		Rect{X: 200, Y: 0, W: 20, H: 400},
		Rect{X: 0, Y: 400, W: 220, H: 20},
	)

	// Flush against the vertical wall, heading into the corner.
	got := layout.Resolve(Vec{180, 300}, Vec{210, 330}, 20)
	assert.Equal(t, 180.0, got.X)
	assert.InDelta(t, 330, got.Y, 1e-9)

	// Flush against both faces: nothing moves, nothing overlaps.
	got = layout.Resolve(Vec{180, 380}, Vec{210, 410}, 20)
	assert.Equal(t, Vec{180, 380}, got)
	assert.False(t, layout.Collides(got, 20))
}

func TestResolve_NoTunnelingThroughThinWall(t *testing.T) {
	layout := wallLayout(Rect{X: 200, Y: 0, W: 2, H: 1000})

	got := layout.Resolve(Vec{150, 500}, Vec{400, 500}, 10)
	assert.Less(t, got.X, 200.0, "fast body must not pass through the wall")
	assert.False(t, layout.Collides(got, 10))
}

func TestResolve_ArenaBounds(t *testing.T) {
	layout := wallLayout()

	got := layout.Resolve(Vec{100, 500}, Vec{-100, 500}, 20)
	assert.Equal(t, Vec{20, 500}, got)

	got = layout.Resolve(Vec{900, 900}, Vec{1200, 1300}, 20)
	assert.Equal(t, Vec{980, 980}, got)
}

func TestResolve_ContainmentOnGeneratedMaps(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))

	for seed := int64(1); seed <= 10; seed++ {
		layout, err := GenerateMap(cfg.Arena, cfg.MapGen, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		starts, err := SelectSpawns(layout, 30, cfg.PlayerRadius, rng)
		require.NoError(t, err)

		for _, pos := range starts {
			for i := 0; i < 20; i++ {
				target := pos.Add(Vec{X: rng.Float64()*400 - 200, Y: rng.Float64()*400 - 200})
				pos = layout.Resolve(pos, target, cfg.PlayerRadius)
				require.False(t, layout.Collides(pos, cfg.PlayerRadius), "seed %d: body overlaps a wall at %+v", seed, pos)
				require.True(t, layout.InBounds(pos, cfg.PlayerRadius), "seed %d: body left the arena at %+v", seed, pos)
			}
		}
	}
}

func TestCollides_IndexMatchesLinearScan(t *testing.T) {
	cfg := DefaultConfig()
	layout, err := GenerateMap(cfg.Arena, cfg.MapGen, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	linear := &MapLayout{Arena: layout.Arena, Walls: layout.Walls}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 5000; i++ {
		c := Vec{X: rng.Float64() * cfg.Arena.Width, Y: rng.Float64() * cfg.Arena.Height}
		r := 5 + rng.Float64()*40
		require.Equal(t, linear.Collides(c, r), layout.Collides(c, r), "mismatch at %+v r=%.1f", c, r)
	}
}
