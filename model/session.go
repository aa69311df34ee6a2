package model

import "time"

// SessionDuration is how long a session accepts check-ins after creation.
const SessionDuration = 10 * time.Minute

type Session struct {
	SessionID   string    `json:"sessionId"`
	ClassName   string    `json:"className"`
	TeacherName string    `json:"teacherName"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its validity window at t.
func (s *Session) Expired(t time.Time) bool {
	return t.After(s.ExpiresAt)
}
