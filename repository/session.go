package repository

import (
	"main/model"
	"main/utils"
	"sync"
	"time"
)

// SessionRepo holds every live attendance session. Purely in-memory: sessions
// do not survive a restart, which is acceptable for a 10-minute validity
// window.
type SessionRepo struct {
	// Now is the clock used for expiry decisions. Tests override it.
	Now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		Now:      time.Now,
		sessions: make(map[string]*model.Session),
	}
}

// CreateSession generates a fresh identifier, stamps the validity window and
// stores the session.
func (r *SessionRepo) CreateSession(className, teacherName string, latitude, longitude float64) *model.Session {
	now := r.Now()
	session := &model.Session{
		SessionID:   utils.GenerateSessionID(),
		ClassName:   className,
		TeacherName: teacherName,
		Latitude:    latitude,
		Longitude:   longitude,
		CreatedAt:   now,
		ExpiresAt:   now.Add(model.SessionDuration),
	}

	r.mu.Lock()
	r.sessions[session.SessionID] = session
	count := len(r.sessions)
	r.mu.Unlock()

	utils.TrackSessionCreated()
	utils.UpdateActiveSessions(float64(count))
	return session
}

// GetSession returns a copy of the session, or ErrSessionNotFound /
// ErrSessionExpired. An expired session is treated as absent for every read
// and write purpose even before the sweep physically removes it.
func (r *SessionRepo) GetSession(sessionID string) (*model.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if session.Expired(r.Now()) {
		return nil, model.ErrSessionExpired
	}

	copied := *session
	return &copied, nil
}

// ExpireSweep removes every session whose expiry is at or before now and
// returns the removed IDs so the caller can cascade device-usage cleanup.
// Idempotent; safe to run on every read or on a ticker.
func (r *SessionRepo) ExpireSweep(now time.Time) []string {
	r.mu.Lock()
	var expired []string
	for id, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if len(expired) > 0 {
		utils.TrackSessionsSwept(len(expired))
	}
	utils.UpdateActiveSessions(float64(count))
	return expired
}

// ActiveCount reports how many sessions are currently stored, swept or not.
func (r *SessionRepo) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
