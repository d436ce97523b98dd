package game

// CatchEvent represents a hider caught by a hunter.
type CatchEvent struct {
	HunterID string
	HiderID  string
}

// InCatchRange checks if a hider is strictly closer than radius to a hunter.
func InCatchRange(hunter, hider *Player, radius float64) bool {
	return Distance(hunter.Position, hider.Position) < radius
}

// FindCatchTargets returns the active, uncaught hiders within radius of the
// hunter, in the order given.
func FindCatchTargets(hunter *Player, players []*Player, radius float64) []*Player {
	var targets []*Player
	for _, p := range players {
		if p.Role != RoleHider || !p.Active() || p.IsCaught() {
			continue
		}
		if InCatchRange(hunter, p, radius) {
			targets = append(targets, p)
		}
	}
	return targets
}

// ProcessCatch marks every hider in range of the hunter as caught and
// returns one event per catch.
func ProcessCatch(hunter *Player, players []*Player, radius float64) []CatchEvent {
	var events []CatchEvent
	for _, p := range FindCatchTargets(hunter, players, radius) {
		p.Catch()
		events = append(events, CatchEvent{HunterID: hunter.ID, HiderID: p.ID})
	}
	return events
}
