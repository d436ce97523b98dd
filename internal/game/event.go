package game

type EventType string

const (
	EventPhaseChanged EventType = "phase_changed"
	EventCaught       EventType = "caught"
	EventRevealed     EventType = "revealed"
	EventJoined       EventType = "joined"
	EventLeft         EventType = "left"
	EventFinished     EventType = "finished"
)

// Event is a notable state change, drained by the host after each tick or action.
type Event struct {
	Type     EventType `json:"type" msgpack:"type"`
	Tick     uint64    `json:"tick" msgpack:"tick"`
	PlayerID string    `json:"player_id,omitempty" msgpack:"player_id,omitempty"`
	ByID     string    `json:"by_id,omitempty" msgpack:"by_id,omitempty"`
	Phase    string    `json:"phase,omitempty" msgpack:"phase,omitempty"`
	Winner   string    `json:"winner,omitempty" msgpack:"winner,omitempty"`
}

func (m *Match) emit(e Event) {
	e.Tick = m.Ticks
	m.events = append(m.events, e)
}

// Events returns and clears the events recorded since the last call.
func (m *Match) Events() []Event {
	events := m.events
	m.events = nil
	return events
}
