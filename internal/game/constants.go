package game

import "time"

// Arena dimensions (world units)
const (
	DefaultArenaWidth  = 2000.0
	DefaultArenaHeight = 2000.0
)

// Player limits
const (
	MinPlayers  = 2
	MaxPlayers  = 6
	HunterRatio = 0.25 // ceil(N * ratio) hunters
)

// Map generation
const (
	MinRoomSize   = 320.0
	MaxRooms      = 10
	DoorSize      = 100.0
	WallThickness = 20.0
)

// Movement
const (
	PlayerRadius = 20.0
	HunterSpeed  = 250.0 // units per second
	HiderSpeed   = 180.0 // units per second
)

// Hunting mechanics
const (
	CatchRadius    = 50.0
	ScanRadius     = 200.0
	RevealDuration = 2 * time.Second
)

// Match timing
const (
	TickRate       = 20 // ticks per second
	LobbyDuration  = 5 * time.Second
	HidingDuration = 10 * time.Second
	HuntDuration   = 300 * time.Second
)

// Props
const (
	PropCount = 16
)

// PropTypes are the disguises a hider may take. Must match client assets.
var PropTypes = []string{"prop1", "prop2", "prop3", "prop4", "prop5"}
