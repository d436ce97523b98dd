package game

// Snapshot is a read-only copy of a match for renderers and the transport.
type Snapshot struct {
	Tick      uint64            `json:"tick" msgpack:"tick"`
	Phase     string            `json:"phase" msgpack:"phase"`
	Elapsed   float64           `json:"elapsed" msgpack:"elapsed"`
	Remaining float64           `json:"remaining_time" msgpack:"remaining_time"`
	Winner    string            `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Players   []PlayerSnapshot  `json:"players" msgpack:"players"`
	Props     []PropSnapshot    `json:"props" msgpack:"props"`
	Results   map[string]string `json:"results,omitempty" msgpack:"results,omitempty"`
	Layout    *MapLayout        `json:"layout,omitempty" msgpack:"layout,omitempty"`
}

type PlayerSnapshot struct {
	ID       string  `json:"id" msgpack:"id"`
	Role     string  `json:"role" msgpack:"role"`
	Status   string  `json:"status" msgpack:"status"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	VX       float64 `json:"vx" msgpack:"vx"`
	VY       float64 `json:"vy" msgpack:"vy"`
	Disguise string  `json:"disguise,omitempty" msgpack:"disguise,omitempty"`
	Caught   bool    `json:"caught,omitempty" msgpack:"caught,omitempty"`
	Left     bool    `json:"left,omitempty" msgpack:"left,omitempty"`
}

type PropSnapshot struct {
	ID       int     `json:"id" msgpack:"id"`
	Type     string  `json:"type" msgpack:"type"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	Rotation float64 `json:"rotation" msgpack:"rotation"`
	PlayerID string  `json:"player_id,omitempty" msgpack:"player_id,omitempty"`
	Taken    bool    `json:"taken,omitempty" msgpack:"taken,omitempty"`
	Revealed bool    `json:"revealed,omitempty" msgpack:"revealed,omitempty"`
}

// Snapshot copies the current state. The layout is shared since it never
// changes after setup.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      m.Ticks,
		Phase:     m.Phase.String(),
		Elapsed:   m.Elapsed(),
		Remaining: m.Remaining(),
		Players:   make([]PlayerSnapshot, 0, len(m.order)),
		Props:     make([]PropSnapshot, 0, len(m.Props)),
		Layout:    m.Layout,
	}
	if m.Winner != SideNone {
		s.Winner = m.Winner.String()
	}
	for _, p := range m.playerList() {
		ps := PlayerSnapshot{
			ID:     p.ID,
			Role:   p.Role.String(),
			Status: p.Status().String(),
			X:      p.Position.X,
			Y:      p.Position.Y,
			VX:     p.Velocity.X,
			VY:     p.Velocity.Y,
			Left:   p.Left,
		}
		if p.Hider != nil {
			ps.Disguise = p.Hider.Disguise
			ps.Caught = p.Hider.Caught
		}
		s.Players = append(s.Players, ps)
	}
	for _, prop := range m.Props {
		s.Props = append(s.Props, PropSnapshot{
			ID:       prop.ID,
			Type:     prop.Type,
			X:        prop.Position.X,
			Y:        prop.Position.Y,
			Rotation: prop.Rotation,
			PlayerID: prop.PlayerID,
			Taken:    prop.Taken,
			Revealed: prop.Revealed(),
		})
	}
	if m.Results != nil {
		s.Results = make(map[string]string, len(m.Results))
		for id, r := range m.Results {
			s.Results[id] = r.String()
		}
	}
	return s
}
