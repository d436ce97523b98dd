package game

import (
	"fmt"
	"slices"
)

// Action is a discrete player intent: Move, Catch, Scan or SetDisguise.
type Action interface {
	actionName() string
}

// Move sets the player's heading. The vector is normalised to the role's
// speed; a zero vector stops the player.
type Move struct {
	Vector Vec
}

// Catch marks every hider within the catch radius of the hunter as caught.
type Catch struct{}

// Scan catches like Catch and also briefly reveals the disguises of the
// remaining hiders within the scan radius.
type Scan struct{}

// SetDisguise changes the prop type a hider is disguised as.
type SetDisguise struct {
	Tag string
}

func (Move) actionName() string        { return "move" }
func (Catch) actionName() string       { return "catch" }
func (Scan) actionName() string        { return "scan" }
func (SetDisguise) actionName() string { return "set_disguise" }

// Apply validates an action against the acting player's role and state and
// applies it. A rejected action returns ErrInvalidAction and changes nothing.
func (m *Match) Apply(playerID string, action Action) error {
	if m.Phase == PhaseFinished {
		return fmt.Errorf("%w: match is finished", ErrInvalidAction)
	}
	p, ok := m.Players[playerID]
	if !ok {
		return fmt.Errorf("%w: unknown player %q", ErrInvalidAction, playerID)
	}
	if p.Left {
		return fmt.Errorf("%w: player %q has left", ErrInvalidAction, playerID)
	}

	switch a := action.(type) {
	case Move:
		return m.applyMove(p, a)
	case Catch:
		return m.applyCatch(p)
	case Scan:
		return m.applyScan(p)
	case SetDisguise:
		return m.applySetDisguise(p, a)
	default:
		return fmt.Errorf("%w: unsupported action %T", ErrInvalidAction, action)
	}
}

func (m *Match) applyMove(p *Player, a Move) error {
	if p.IsCaught() {
		return fmt.Errorf("%w: caught players cannot move", ErrInvalidAction)
	}
	if !a.Vector.IsFinite() {
		return fmt.Errorf("%w: move vector is not finite", ErrInvalidAction)
	}
	if a.Vector.IsZero() {
		p.Velocity = Vec{}
		return nil
	}
	p.Velocity = a.Vector.Scale(m.Config.speed(p.Role) / a.Vector.Len())
	return nil
}

func (m *Match) applyCatch(p *Player) error {
	if err := m.requireHunting(p, "catch"); err != nil {
		return err
	}
	m.catchAround(p)
	m.syncProps()
	m.adjudicate()
	return nil
}

func (m *Match) catchAround(hunter *Player) {
	for _, ev := range ProcessCatch(hunter, m.playerList(), m.Config.CatchRadius) {
		m.emit(Event{Type: EventCaught, PlayerID: ev.HiderID, ByID: ev.HunterID})
	}
}

func (m *Match) applyScan(p *Player) error {
	if err := m.requireHunting(p, "scan"); err != nil {
		return err
	}
	m.catchAround(p)

	ticks := m.Config.ticks(m.Config.RevealDuration)
	for _, prop := range m.Props {
		if !prop.Bound() {
			continue
		}
		hider := m.Players[prop.PlayerID]
		if hider == nil || !hider.Active() || hider.IsCaught() {
			continue
		}
		if Distance(p.Position, hider.Position) <= m.Config.ScanRadius {
			prop.revealTicks = ticks
			m.emit(Event{Type: EventRevealed, PlayerID: hider.ID, ByID: p.ID})
		}
	}
	m.syncProps()
	m.adjudicate()
	return nil
}

func (m *Match) applySetDisguise(p *Player, a SetDisguise) error {
	if p.IsHunter() {
		return fmt.Errorf("%w: hunters cannot disguise", ErrInvalidAction)
	}
	if p.IsCaught() {
		return fmt.Errorf("%w: caught players cannot change disguise", ErrInvalidAction)
	}
	if !slices.Contains(m.Config.PropTypes, a.Tag) {
		return fmt.Errorf("%w: unknown prop type %q", ErrInvalidAction, a.Tag)
	}
	p.Hider.Disguise = a.Tag
	m.syncProps()
	return nil
}

// requireHunting checks the preconditions shared by hunter-only actions.
func (m *Match) requireHunting(p *Player, name string) error {
	if !p.IsHunter() {
		return fmt.Errorf("%w: only hunters can %s", ErrInvalidAction, name)
	}
	if m.Phase != PhaseHunting {
		return fmt.Errorf("%w: cannot %s during %s phase", ErrInvalidAction, name, m.Phase)
	}
	return nil
}
