package model

import (
	"errors"
	"fmt"
)

// Check-in gate failures. Every rejection a handler can return maps to exactly
// one of these, so the transport layer never needs a catch-all.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrDuplicateDevice    = errors.New("device already used for this session")
	ErrDuplicateStudent   = errors.New("already marked present")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// TooFarError is returned when a student is outside the geofence. It carries
// the measured distance so the client can tell the student how far off they are.
type TooFarError struct {
	Distance float64 // meters, rounded to one decimal
}

func (e *TooFarError) Error() string {
	return fmt.Sprintf("too far from class. Distance: %.1fm", e.Distance)
}
