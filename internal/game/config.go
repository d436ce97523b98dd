package game

import (
	"fmt"
	"math"
	"time"
)

// MapGenConfig holds room-generation parameters.
type MapGenConfig struct {
	MinRoomSize   float64 `yaml:"min_room_size" json:"min_room_size"`
	MaxRooms      int     `yaml:"max_rooms" json:"max_rooms"`
	DoorSize      float64 `yaml:"door_size" json:"door_size"`
	WallThickness float64 `yaml:"wall_thickness" json:"wall_thickness"`
}

// Config holds the settings for a single match.
type Config struct {
	Arena  Arena        `yaml:"arena" json:"arena"`
	MapGen MapGenConfig `yaml:"map" json:"map"`

	MinPlayers        int     `yaml:"min_players" json:"min_players"`
	MaxPlayers        int     `yaml:"max_players" json:"max_players"`
	HunterRatio       float64 `yaml:"hunter_ratio" json:"hunter_ratio"`
	FirstPlayerHunter bool    `yaml:"first_player_hunter" json:"first_player_hunter"`

	PlayerRadius float64 `yaml:"player_radius" json:"player_radius"`
	HunterSpeed  float64 `yaml:"hunter_speed" json:"hunter_speed"`
	HiderSpeed   float64 `yaml:"hider_speed" json:"hider_speed"`

	CatchRadius    float64       `yaml:"catch_radius" json:"catch_radius"`
	ScanRadius     float64       `yaml:"scan_radius" json:"scan_radius"`
	RevealDuration time.Duration `yaml:"reveal_duration" json:"reveal_duration"`

	TickRate       int           `yaml:"tick_rate" json:"tick_rate"`
	LobbyDuration  time.Duration `yaml:"lobby_duration" json:"lobby_duration"`
	HidingDuration time.Duration `yaml:"hiding_duration" json:"hiding_duration"`
	HuntDuration   time.Duration `yaml:"hunt_duration" json:"hunt_duration"`

	PropCount int      `yaml:"prop_count" json:"prop_count"`
	PropTypes []string `yaml:"prop_types" json:"prop_types"`

	// Seed feeds the match random stream. Zero picks a time-based seed.
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns the standard match settings.
func DefaultConfig() Config {
	return Config{
		Arena: Arena{Width: DefaultArenaWidth, Height: DefaultArenaHeight},
		MapGen: MapGenConfig{
			MinRoomSize:   MinRoomSize,
			MaxRooms:      MaxRooms,
			DoorSize:      DoorSize,
			WallThickness: WallThickness,
		},
		MinPlayers:     MinPlayers,
		MaxPlayers:     MaxPlayers,
		HunterRatio:    HunterRatio,
		PlayerRadius:   PlayerRadius,
		HunterSpeed:    HunterSpeed,
		HiderSpeed:     HiderSpeed,
		CatchRadius:    CatchRadius,
		ScanRadius:     ScanRadius,
		RevealDuration: RevealDuration,
		TickRate:       TickRate,
		LobbyDuration:  LobbyDuration,
		HidingDuration: HidingDuration,
		HuntDuration:   HuntDuration,
		PropCount:      PropCount,
		PropTypes:      append([]string(nil), PropTypes...),
	}
}

// Validate reports the first invalid setting as an ErrConfiguration.
func (c Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have positive size", ErrConfiguration)
	case c.MinPlayers < 2:
		return fmt.Errorf("%w: at least 2 players are required", ErrConfiguration)
	case c.MaxPlayers < c.MinPlayers:
		return fmt.Errorf("%w: max players below min players", ErrConfiguration)
	case !c.FirstPlayerHunter && (c.HunterRatio <= 0 || c.HunterRatio >= 1):
		return fmt.Errorf("%w: hunter ratio must be in (0, 1)", ErrConfiguration)
	case c.PlayerRadius <= 0:
		return fmt.Errorf("%w: player radius must be positive", ErrConfiguration)
	case c.HunterSpeed <= 0 || c.HiderSpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrConfiguration)
	case c.CatchRadius <= 0 || c.ScanRadius < 0:
		return fmt.Errorf("%w: invalid catch or scan radius", ErrConfiguration)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive", ErrConfiguration)
	case c.LobbyDuration < 0 || c.HidingDuration < 0 || c.HuntDuration <= 0:
		return fmt.Errorf("%w: invalid phase durations", ErrConfiguration)
	case c.PropCount < 0:
		return fmt.Errorf("%w: prop count must not be negative", ErrConfiguration)
	case len(c.PropTypes) == 0:
		return fmt.Errorf("%w: at least one prop type is required", ErrConfiguration)
	case c.MapGen.DoorSize <= 2*c.PlayerRadius:
		return fmt.Errorf("%w: door size %.1f does not fit a body of radius %.1f",
			ErrConfiguration, c.MapGen.DoorSize, c.PlayerRadius)
	}
	return c.MapGen.Validate()
}

// Validate checks the generation parameters.
func (c MapGenConfig) Validate() error {
	switch {
	case c.MinRoomSize <= 0 || c.DoorSize <= 0 || c.WallThickness <= 0:
		return fmt.Errorf("%w: map sizes must be positive", ErrConfiguration)
	case c.MaxRooms < 1:
		return fmt.Errorf("%w: max rooms must be at least 1", ErrConfiguration)
	case c.DoorSize+c.WallThickness > c.MinRoomSize:
		return fmt.Errorf("%w: min room size %.1f cannot hold a door of %.1f in a wall of %.1f",
			ErrConfiguration, c.MinRoomSize, c.DoorSize, c.WallThickness)
	}
	return nil
}

// ticks converts a duration into whole ticks, rounding to nearest.
func (c Config) ticks(d time.Duration) int {
	return int(math.Round(d.Seconds() * float64(c.TickRate)))
}

// dt is the fixed timestep in seconds.
func (c Config) dt() float64 {
	return 1 / float64(c.TickRate)
}

func (c Config) hunterCount(n int) int {
	if c.FirstPlayerHunter {
		return 1
	}
	h := int(math.Ceil(float64(n) * c.HunterRatio))
	if h < 1 {
		h = 1
	}
	if h > n-1 {
		h = n - 1
	}
	return h
}

func (c Config) speed(r Role) float64 {
	if r == RoleHunter {
		return c.HunterSpeed
	}
	return c.HiderSpeed
}
