package game

import "encoding/json"

type Role int

const (
	RoleHider Role = iota
	RoleHunter
)

func (r Role) String() string {
	switch r {
	case RoleHunter:
		return "hunter"
	default:
		return "hider"
	}
}

// MarshalJSON serializes Role as a string.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON deserializes Role from a string.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "hunter":
		*r = RoleHunter
	default:
		*r = RoleHider
	}
	return nil
}

// PlayerStatus is the per-player action state.
type PlayerStatus int

const (
	StatusIdle PlayerStatus = iota
	StatusMoving
	StatusCaught
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusMoving:
		return "moving"
	case StatusCaught:
		return "caught"
	default:
		return "unknown"
	}
}

// HiderState exists only for hiders; hunters carry no disguise and are never caught.
type HiderState struct {
	Disguise string `json:"disguise"`
	Caught   bool   `json:"caught"`
}

type Player struct {
	ID       string      `json:"id"`
	Role     Role        `json:"role"`
	Position Vec         `json:"position"`
	Velocity Vec         `json:"velocity"`
	Hider    *HiderState `json:"hider,omitempty"`
	// Left is set when the player disconnected mid-match. The body stays in
	// place and is ignored by win accounting until the player rejoins.
	Left bool `json:"left,omitempty"`
}

func NewHunter(id string) *Player {
	return &Player{ID: id, Role: RoleHunter}
}

func NewHider(id, disguise string) *Player {
	return &Player{
		ID:    id,
		Role:  RoleHider,
		Hider: &HiderState{Disguise: disguise},
	}
}

func (p *Player) IsHunter() bool {
	return p.Role == RoleHunter
}

func (p *Player) IsCaught() bool {
	return p.Hider != nil && p.Hider.Caught
}

// Active reports whether the player takes part in win accounting.
func (p *Player) Active() bool {
	return !p.Left
}

func (p *Player) Catch() {
	if p.Hider == nil {
		return
	}
	p.Hider.Caught = true
	p.Velocity = Vec{}
}

func (p *Player) Status() PlayerStatus {
	switch {
	case p.IsCaught():
		return StatusCaught
	case !p.Velocity.IsZero():
		return StatusMoving
	default:
		return StatusIdle
	}
}
