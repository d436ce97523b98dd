package game

import "math"

// Prop is a decorative object. Props with a PlayerID are a hider's disguise
// and follow that player; the rest are static decor.
type Prop struct {
	ID       int     `json:"id" msgpack:"id"`
	Type     string  `json:"type" msgpack:"type"`
	Position Vec     `json:"position" msgpack:"position"`
	Rotation float64 `json:"rotation" msgpack:"rotation"`
	PlayerID string  `json:"player_id,omitempty" msgpack:"player_id,omitempty"`
	Taken    bool    `json:"taken,omitempty" msgpack:"taken,omitempty"`

	// revealTicks counts down while a scan has exposed this prop.
	revealTicks int
}

func (p *Prop) Bound() bool {
	return p.PlayerID != ""
}

func (p *Prop) Revealed() bool {
	return p.revealTicks > 0
}

// placeDecorProps claims boundary cells for static props so decor hugs the
// walls instead of cluttering open floor. Fewer props than requested are
// placed when the map runs out of boundary cells.
func placeDecorProps(grid *SpawnGrid, count int, types []string, firstID int, rng Rand) []*Prop {
	positions, _ := grid.TakeBoundary(count, rng)
	props := make([]*Prop, 0, len(positions))
	for i, pos := range positions {
		props = append(props, &Prop{
			ID:       firstID + i,
			Type:     types[rng.Intn(len(types))],
			Position: pos,
			Rotation: float64(rng.Intn(4)) * math.Pi / 2,
		})
	}
	return props
}

func randomDisguise(types []string, rng Rand) string {
	return types[rng.Intn(len(types))]
}
