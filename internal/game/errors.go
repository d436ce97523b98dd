package game

import "errors"

var (
	// ErrInvalidAction is returned when an action is illegal for the acting
	// player's role, state or the current phase. State is left unchanged.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInsufficientSpace is returned when the map cannot host the requested bodies.
	ErrInsufficientSpace = errors.New("insufficient space")
	// ErrConfiguration is returned for invalid settings or player counts.
	ErrConfiguration = errors.New("configuration error")
)
