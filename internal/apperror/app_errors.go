package apperror

import "errors"

var (
	ErrNotPlaceable      = errors.New("slot is not placeable")
	ErrEdgeMismatch      = errors.New("edges don't match")
	ErrInvalidRotation   = errors.New("invalid rotation")
	ErrEmptyTile         = errors.New("tile has no edges")
	ErrProtocolViolation = errors.New("echoed tile differs from dealt tile")
	ErrTimeout           = errors.New("player did not reply in time")
	ErrDeckExhausted     = errors.New("no tiles left in deck")
	ErrSessionNotFound   = errors.New("session not found")
)
