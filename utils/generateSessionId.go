package utils

import "github.com/google/uuid"

// GenerateSessionID returns a fresh random 128-bit session identifier.
func GenerateSessionID() string {
	return uuid.New().String()
}
