package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func caughtHider(id string) *Player {
	p := NewHider(id, "prop1")
	p.Catch()
	return p
}

func leftPlayer(p *Player) *Player {
	p.Left = true
	return p
}

func TestCheckHunterWin(t *testing.T) {
	tests := []struct {
		name     string
		players  []*Player
		expected bool
	}{
		{
			name:     "all hiders caught",
			players:  []*Player{NewHunter("h1"), caughtHider("p1"), caughtHider("p2")},
			expected: true,
		},
		{
			name:     "one hider free",
			players:  []*Player{NewHunter("h1"), caughtHider("p1"), NewHider("p2", "prop1")},
			expected: false,
		},
		{
			name:     "free hider has left",
			players:  []*Player{NewHunter("h1"), caughtHider("p1"), leftPlayer(NewHider("p2", "prop1"))},
			expected: true,
		},
		{
			name:     "no hiders",
			players:  []*Player{NewHunter("h1")},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckHunterWin(tt.players))
		})
	}
}

func TestCheckHiderWin(t *testing.T) {
	tests := []struct {
		name         string
		players      []*Player
		timerExpired bool
		expected     bool
	}{
		{
			name:         "timer expired with free hider",
			players:      []*Player{NewHunter("h1"), NewHider("p1", "prop1")},
			timerExpired: true,
			expected:     true,
		},
		{
			name:         "timer running",
			players:      []*Player{NewHunter("h1"), NewHider("p1", "prop1")},
			timerExpired: false,
			expected:     false,
		},
		{
			name:         "timer expired but all caught",
			players:      []*Player{NewHunter("h1"), caughtHider("p1")},
			timerExpired: true,
			expected:     false,
		},
		{
			name:         "every hunter left",
			players:      []*Player{leftPlayer(NewHunter("h1")), NewHider("p1", "prop1")},
			timerExpired: false,
			expected:     true,
		},
		{
			name:         "one of two hunters left",
			players:      []*Player{leftPlayer(NewHunter("h1")), NewHunter("h2"), NewHider("p1", "prop1")},
			timerExpired: false,
			expected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckHiderWin(tt.players, tt.timerExpired))
		})
	}
}

func TestInCatchRange(t *testing.T) {
	tests := []struct {
		name     string
		hider    Vec
		expected bool
	}{
		{"same spot", Vec{100, 100}, true},
		{"well inside", Vec{130, 100}, true},
		{"exactly at radius", Vec{150, 100}, false},
		{"outside", Vec{200, 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunter := NewHunter("h")
			hunter.Position = Vec{100, 100}
			hider := NewHider("p", "prop1")
			hider.Position = tt.hider
			assert.Equal(t, tt.expected, InCatchRange(hunter, hider, CatchRadius))
		})
	}
}

func TestProcessCatch(t *testing.T) {
	hunter := NewHunter("h")
	hunter.Position = Vec{100, 100}

	near := NewHider("near", "prop1")
	near.Position = Vec{120, 100}
	near.Velocity = Vec{10, 0}
	far := NewHider("far", "prop1")
	far.Position = Vec{400, 100}
	already := caughtHider("already")
	already.Position = Vec{110, 100}
	gone := leftPlayer(NewHider("gone", "prop1"))
	gone.Position = Vec{105, 100}
	other := NewHunter("h2")
	other.Position = Vec{101, 100}

	events := ProcessCatch(hunter, []*Player{hunter, near, far, already, gone, other}, CatchRadius)

	assert.Equal(t, []CatchEvent{{HunterID: "h", HiderID: "near"}}, events)
	assert.True(t, near.IsCaught())
	assert.True(t, near.Velocity.IsZero())
	assert.False(t, far.IsCaught())
	assert.False(t, gone.IsCaught())
}

func TestPlayer_Status(t *testing.T) {
	idle := NewHider("a", "prop1")
	moving := NewHunter("b")
	moving.Velocity = Vec{1, 0}

	assert.Equal(t, StatusIdle, idle.Status())
	assert.Equal(t, StatusMoving, moving.Status())
	assert.Equal(t, StatusCaught, caughtHider("c").Status())

	hunter := NewHunter("d")
	hunter.Catch()
	assert.False(t, hunter.IsCaught(), "hunters are never caught")
}
