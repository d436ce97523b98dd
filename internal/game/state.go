package game

type RoomState int

const (
	StateWaiting RoomState = iota
	StatePlaying
	StateEnded
)

func (s RoomState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Phase is the coarse match stage. Phases only move forward.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseHiding
	PhaseHunting
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseHiding:
		return "hiding"
	case PhaseHunting:
		return "hunting"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Side is the winning team of a finished match.
type Side int

const (
	SideNone Side = iota
	SideHunters
	SideHiders
)

func (s Side) String() string {
	switch s {
	case SideHunters:
		return "hunters"
	case SideHiders:
		return "props"
	default:
		return "none"
	}
}

// Result is a player's outcome once the match is finished.
type Result int

const (
	ResultNone Result = iota
	ResultWon
	ResultLost
	ResultAbandoned
)

func (r Result) String() string {
	switch r {
	case ResultWon:
		return "WON"
	case ResultLost:
		return "LOST"
	case ResultAbandoned:
		return "ABANDONED"
	default:
		return "NONE"
	}
}
