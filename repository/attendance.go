package repository

import (
	"main/model"
	"sync"
	"time"
)

// AttendanceRepo is the append-only attendance ledger plus the set of
// (session, device) pairs already spent. Records live for the whole process;
// device usage is dropped when the owning session is swept.
type AttendanceRepo struct {
	mu      sync.RWMutex
	records []model.AttendanceRecord

	// sessionID -> fingerprint -> first use
	devices map[string]map[string]time.Time
	// sessionID -> rollNo already recorded
	students map[string]map[string]bool
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{
		devices:  make(map[string]map[string]time.Time),
		students: make(map[string]map[string]bool),
	}
}

// HasDeviceUsed reports whether a device has already checked in for a session.
func (r *AttendanceRepo) HasDeviceUsed(sessionID, fingerprint string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.devices[sessionID][fingerprint]
	return ok
}

// RecordDeviceUsage registers a device for a session. The check and insert
// happen under one lock so two near-simultaneous check-ins from the same
// device cannot both pass.
func (r *AttendanceRepo) RecordDeviceUsage(sessionID, fingerprint string, firstUsedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[sessionID][fingerprint]; ok {
		return model.ErrDuplicateDevice
	}
	if r.devices[sessionID] == nil {
		r.devices[sessionID] = make(map[string]time.Time)
	}
	r.devices[sessionID][fingerprint] = firstUsedAt
	return nil
}

// RemoveDeviceUsage undoes a device registration when a later check-in gate
// fails, so a rejected check-in leaves no trace.
func (r *AttendanceRepo) RemoveDeviceUsage(sessionID, fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices[sessionID], fingerprint)
}

// HasStudentRecorded reports whether a roll number is already recorded for a
// session.
func (r *AttendanceRepo) HasStudentRecorded(sessionID, rollNo string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.students[sessionID][rollNo]
}

// AppendRecord appends to the ledger in commit order. Uniqueness is the
// caller's responsibility; the caller holds the check-in transaction lock.
func (r *AttendanceRepo) AppendRecord(record model.AttendanceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, record)
	if r.students[record.SessionID] == nil {
		r.students[record.SessionID] = make(map[string]bool)
	}
	r.students[record.SessionID][record.RollNo] = true
}

// RecordsForSession returns a snapshot of the session's records in insertion
// order.
func (r *AttendanceRepo) RecordsForSession(sessionID string) []model.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.AttendanceRecord, 0)
	for _, record := range r.records {
		if record.SessionID == sessionID {
			records = append(records, record)
		}
	}
	return records
}

// PurgeSession drops a swept session's device-usage entries. Attendance
// records are kept for the process lifetime; only the uniqueness indexes for
// the dead session go away, so a fresh session starts with a clean device set.
func (r *AttendanceRepo) PurgeSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, sessionID)
	delete(r.students, sessionID)
}

// DeviceCount reports how many devices have checked in for a session.
func (r *AttendanceRepo) DeviceCount(sessionID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices[sessionID])
}
