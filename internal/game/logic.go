package game

// CheckHunterWin returns true if no active hider is left uncaught.
// Hiders who left the match do not count either way.
func CheckHunterWin(players []*Player) bool {
	for _, p := range players {
		if p.Role == RoleHider && p.Active() && !p.IsCaught() {
			return false
		}
	}
	return true
}

// CheckHiderWin returns true if the timer expired with at least one active
// hider free, or if every hunter has left.
func CheckHiderWin(players []*Player, timerExpired bool) bool {
	huntersActive := false
	hiderFree := false
	for _, p := range players {
		if !p.Active() {
			continue
		}
		switch {
		case p.IsHunter():
			huntersActive = true
		case !p.IsCaught():
			hiderFree = true
		}
	}
	if !huntersActive {
		return true
	}
	return timerExpired && hiderFree
}

// adjudicate ends the match when a win condition holds. A match everyone
// has left ends with no winner.
func (m *Match) adjudicate() {
	if m.Phase == PhaseFinished {
		return
	}
	players := m.playerList()
	switch {
	case m.activeCount() == 0:
		m.finish(SideNone)
	case CheckHunterWin(players):
		m.finish(SideHunters)
	case CheckHiderWin(players, m.Phase == PhaseHunting && m.remainingTicks <= 0):
		m.finish(SideHiders)
	}
}

func (m *Match) finish(winner Side) {
	m.Phase = PhaseFinished
	m.Winner = winner
	m.Results = make(map[string]Result, len(m.order))
	for _, p := range m.playerList() {
		switch {
		case !p.Active():
			m.Results[p.ID] = ResultAbandoned
		case (p.IsHunter() && winner == SideHunters) || (!p.IsHunter() && winner == SideHiders):
			m.Results[p.ID] = ResultWon
		default:
			m.Results[p.ID] = ResultLost
		}
		p.Velocity = Vec{}
	}
	m.emit(Event{Type: EventFinished, Winner: winner.String()})
}
