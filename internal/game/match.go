package game

import "fmt"

// Match is the authoritative state of one game. It has no locking: the
// owner must deliver ticks and actions one at a time.
type Match struct {
	Config  Config
	Layout  *MapLayout
	Players map[string]*Player
	Props   []*Prop
	Phase   Phase
	Ticks   uint64
	Winner  Side
	Results map[string]Result

	order          []string // player ids in setup/join order
	elapsedTicks   int
	remainingTicks int
	nextPropID     int
	rng            Rand
	spawns         *SpawnGrid
	events         []Event
}

// Setup creates a match for the given players: assigns roles, generates the
// map and places every player and prop. A nil rng uses cfg.Seed.
func Setup(playerIDs []string, cfg Config, rng Rand) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := len(playerIDs)
	if n < cfg.MinPlayers || n > cfg.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players, need %d-%d", ErrConfiguration, n, cfg.MinPlayers, cfg.MaxPlayers)
	}
	seen := make(map[string]bool, n)
	for _, id := range playerIDs {
		if id == "" || seen[id] {
			return nil, fmt.Errorf("%w: player ids must be unique and non-empty", ErrConfiguration)
		}
		seen[id] = true
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}

	hunters := assignHunters(playerIDs, cfg, rng)

	layout, err := GenerateMap(cfg.Arena, cfg.MapGen, rng)
	if err != nil {
		return nil, err
	}
	spawns := NewSpawnGrid(layout, cfg.PlayerRadius)
	positions, err := spawns.Take(n, rng)
	if err != nil {
		return nil, err
	}

	m := &Match{
		Config:         cfg,
		Layout:         layout,
		Players:        make(map[string]*Player, n),
		Phase:          PhaseLobby,
		remainingTicks: cfg.ticks(cfg.HuntDuration),
		rng:            rng,
		spawns:         spawns,
	}
	for i, id := range playerIDs {
		var p *Player
		if hunters[id] {
			p = NewHunter(id)
		} else {
			p = NewHider(id, randomDisguise(cfg.PropTypes, rng))
		}
		p.Position = positions[i]
		m.addPlayer(p)
	}

	decor := placeDecorProps(spawns, cfg.PropCount, cfg.PropTypes, m.nextPropID, rng)
	m.Props = append(m.Props, decor...)
	m.nextPropID += len(decor)

	return m, nil
}

// assignHunters picks the hunters: the first player, or a random
// ceil(N * ratio) of them.
func assignHunters(ids []string, cfg Config, rng Rand) map[string]bool {
	hunters := make(map[string]bool)
	if cfg.FirstPlayerHunter {
		hunters[ids[0]] = true
		return hunters
	}
	shuffled := append([]string(nil), ids...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for _, id := range shuffled[:cfg.hunterCount(len(ids))] {
		hunters[id] = true
	}
	return hunters
}

// addPlayer registers p and, for hiders, the prop it is disguised as.
func (m *Match) addPlayer(p *Player) {
	m.Players[p.ID] = p
	m.order = append(m.order, p.ID)
	if p.Hider == nil {
		return
	}
	m.Props = append(m.Props, &Prop{
		ID:       m.nextPropID,
		Type:     p.Hider.Disguise,
		Position: p.Position,
		PlayerID: p.ID,
	})
	m.nextPropID++
}

// Tick advances the match by one fixed timestep. It does nothing once the
// match is finished.
func (m *Match) Tick() {
	if m.Phase == PhaseFinished {
		return
	}
	m.Ticks++
	m.elapsedTicks++

	m.advancePhase()
	m.integrate()
	if m.Phase == PhaseHunting && m.remainingTicks > 0 {
		m.remainingTicks--
	}
	for _, prop := range m.Props {
		if prop.revealTicks > 0 {
			prop.revealTicks--
		}
	}
	m.syncProps()
	m.adjudicate()
}

// advancePhase applies the time-gated transitions. Several may fire in one
// tick when a phase has zero length.
func (m *Match) advancePhase() {
	lobby := m.Config.ticks(m.Config.LobbyDuration)
	hiding := lobby + m.Config.ticks(m.Config.HidingDuration)

	if m.Phase == PhaseLobby && m.elapsedTicks >= lobby {
		m.setPhase(PhaseHiding)
	}
	if m.Phase == PhaseHiding && m.elapsedTicks >= hiding {
		m.setPhase(PhaseHunting)
	}
}

func (m *Match) setPhase(p Phase) {
	m.Phase = p
	m.emit(Event{Type: EventPhaseChanged, Phase: p.String()})
}

// integrate moves every free body by its velocity, resolved against the map.
func (m *Match) integrate() {
	dt := m.Config.dt()
	for _, p := range m.playerList() {
		if p.Left || p.IsCaught() || p.Velocity.IsZero() || !m.canMove(p) {
			continue
		}
		target := p.Position.Add(p.Velocity.Scale(dt))
		p.Position = m.Layout.Resolve(p.Position, target, m.Config.PlayerRadius)
	}
}

// canMove gates movement by phase: nobody moves in the lobby and hunters
// stay put while hiders hide.
func (m *Match) canMove(p *Player) bool {
	switch m.Phase {
	case PhaseLobby:
		return false
	case PhaseHiding:
		return !p.IsHunter()
	default:
		return true
	}
}

// syncProps keeps every bound prop on its player.
func (m *Match) syncProps() {
	for _, prop := range m.Props {
		if !prop.Bound() {
			continue
		}
		p := m.Players[prop.PlayerID]
		if p == nil || p.Hider == nil {
			continue
		}
		prop.Position = p.Position
		prop.Type = p.Hider.Disguise
		prop.Taken = p.Hider.Caught
	}
}

// Join adds a player. New players are accepted only in the lobby phase and
// join as hiders; a player who left may rejoin at any time before the end.
func (m *Match) Join(playerID string) error {
	if m.Phase == PhaseFinished {
		return fmt.Errorf("%w: match is finished", ErrInvalidAction)
	}
	if p, ok := m.Players[playerID]; ok {
		if !p.Left {
			return fmt.Errorf("%w: player %q is already in the match", ErrInvalidAction, playerID)
		}
		p.Left = false
		m.emit(Event{Type: EventJoined, PlayerID: playerID})
		return nil
	}
	if playerID == "" {
		return fmt.Errorf("%w: player id must not be empty", ErrConfiguration)
	}
	if m.Phase != PhaseLobby {
		return fmt.Errorf("%w: match already started", ErrInvalidAction)
	}
	// Seats of players who left stay reserved for their rejoin.
	if len(m.Players) >= m.Config.MaxPlayers {
		return fmt.Errorf("%w: match is full", ErrConfiguration)
	}
	pos, err := m.spawns.Take(1, m.rng)
	if err != nil {
		return err
	}

	p := NewHider(playerID, randomDisguise(m.Config.PropTypes, m.rng))
	p.Position = pos[0]
	m.addPlayer(p)
	m.emit(Event{Type: EventJoined, PlayerID: playerID})
	return nil
}

// Leave marks a player as gone. The body stays frozen where it was and no
// longer counts towards either side's win condition.
func (m *Match) Leave(playerID string) error {
	p, ok := m.Players[playerID]
	if !ok {
		return fmt.Errorf("%w: unknown player %q", ErrInvalidAction, playerID)
	}
	if m.Phase == PhaseFinished || p.Left {
		return nil
	}
	p.Left = true
	p.Velocity = Vec{}
	m.emit(Event{Type: EventLeft, PlayerID: playerID})
	m.adjudicate()
	return nil
}

// Remaining returns the hunt countdown in seconds.
func (m *Match) Remaining() float64 {
	return float64(m.remainingTicks) / float64(m.Config.TickRate)
}

// Elapsed returns the time since setup in seconds.
func (m *Match) Elapsed() float64 {
	return float64(m.elapsedTicks) / float64(m.Config.TickRate)
}

// PlayerIDs returns player ids in setup order.
func (m *Match) PlayerIDs() []string {
	return append([]string(nil), m.order...)
}

func (m *Match) playerList() []*Player {
	players := make([]*Player, 0, len(m.order))
	for _, id := range m.order {
		players = append(players, m.Players[id])
	}
	return players
}

func (m *Match) activeCount() int {
	count := 0
	for _, p := range m.Players {
		if p.Active() {
			count++
		}
	}
	return count
}
