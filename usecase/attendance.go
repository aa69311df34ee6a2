package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
	"sync"
	"time"
)

// Exporter is the external sink committed records are handed to. Failures are
// logged, never rolled back into the in-memory commit.
type Exporter interface {
	Export(record *model.AttendanceRecord) error
}

// AttendanceService owns the session store and the attendance ledger. All
// mutations go through it; the check-in transaction and the sweep's removal
// step serialize on one mutex, the simple locking scheme a single-process
// service needs.
type AttendanceService struct {
	SessionRepo    *repository.SessionRepo
	AttendanceRepo *repository.AttendanceRepo
	Exporter       Exporter

	// AttendBaseURL is the frontend origin embedded in QR codes,
	// e.g. "http://localhost:3000".
	AttendBaseURL string

	mu sync.Mutex
}

type CheckInInput struct {
	SessionID         string
	StudentName       string
	RollNo            string
	Course            string
	Latitude          float64
	Longitude         float64
	DeviceFingerprint string
}

// CreateSession opens a new attendance session at the given class location
// and returns it along with its QR code as an inline data URI.
func (s *AttendanceService) CreateSession(className, teacherName string, latitude, longitude float64) (*model.Session, string, error) {
	if err := services.ValidateCoordinates(latitude, longitude); err != nil {
		return nil, "", err
	}

	session := s.SessionRepo.CreateSession(className, teacherName, latitude, longitude)

	attendURI := fmt.Sprintf("%s/attend/%s", s.AttendBaseURL, session.SessionID)
	qrCode, err := services.EncodeSessionQR(attendURI)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session QR code: %w", err)
	}

	log.Printf("Created session %s for %s (%s)", session.SessionID, className, teacherName)
	return session, qrCode, nil
}

// CheckIn runs the attendance transaction. Each gate short-circuits with its
// typed error and a failed gate leaves the session store, the ledger and the
// device set untouched:
//
//	1. session must exist and be inside its validity window
//	2. student must be inside the geofence
//	3. device must not have checked in for this session yet
//	4. roll number must not be recorded for this session yet
//
// On success the committed record's distance (meters, one decimal) is
// returned and the record is handed to the exporter without blocking the
// caller.
func (s *AttendanceService) CheckIn(input CheckInInput) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// No sweep here: resolving through GetSession keeps the expired /
	// not-found distinction intact for the caller. The ticker sweeper does
	// the physical removal.
	now := s.SessionRepo.Now()
	session, err := s.SessionRepo.GetSession(input.SessionID)
	if err != nil {
		s.trackCheckInErr(err)
		return 0, err
	}

	distance, err := services.DistanceMeters(session.Latitude, session.Longitude, input.Latitude, input.Longitude)
	if err != nil {
		s.trackCheckInErr(err)
		return 0, err
	}
	distance = services.RoundMeters(distance)
	if !services.WithinRadius(distance, services.GeofenceRadiusMeters) {
		utils.TrackCheckIn("too_far")
		return 0, &model.TooFarError{Distance: distance}
	}

	if err := s.AttendanceRepo.RecordDeviceUsage(input.SessionID, input.DeviceFingerprint, now); err != nil {
		s.trackCheckInErr(err)
		return 0, err
	}
	if s.AttendanceRepo.HasStudentRecorded(input.SessionID, input.RollNo) {
		// Undo the device registration so the failed gate commits nothing.
		s.AttendanceRepo.RemoveDeviceUsage(input.SessionID, input.DeviceFingerprint)
		utils.TrackCheckIn("duplicate_student")
		return 0, model.ErrDuplicateStudent
	}

	record := model.AttendanceRecord{
		SessionID:   input.SessionID,
		StudentName: input.StudentName,
		RollNo:      input.RollNo,
		Course:      input.Course,
		ClassName:   session.ClassName,
		TeacherName: session.TeacherName,
		Timestamp:   now,
		Distance:    distance,
	}
	s.AttendanceRepo.AppendRecord(record)
	utils.TrackCheckIn("committed")

	if s.Exporter != nil {
		go func(rec model.AttendanceRecord) {
			if err := s.Exporter.Export(&rec); err != nil {
				utils.TrackExportError()
				log.Printf("Failed to export attendance record for %s: %v", rec.ClassName, err)
			}
		}(record)
	}

	return distance, nil
}

// SessionStatus returns a live session for status display. GetSession treats
// an expired session as dead even before the sweeper removes it, so a caller
// never sees a session past its expiry as valid.
func (s *AttendanceService) SessionStatus(sessionID string) (*model.Session, error) {
	return s.SessionRepo.GetSession(sessionID)
}

// Records lists a session's committed records in commit order. Works for
// expired sessions too: the ledger outlives the session.
func (s *AttendanceService) Records(sessionID string) []model.AttendanceRecord {
	return s.AttendanceRepo.RecordsForSession(sessionID)
}

// Sweep removes expired sessions and cascades their device-usage entries.
func (s *AttendanceService) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
}

// StartSweeper runs the expiry sweep on an interval until ctx is done.
// Expired sessions are already invisible to reads and check-ins; the ticker
// reclaims their memory and cascades device-usage cleanup.
func (s *AttendanceService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}

// sweepLocked is the removal step. Caller holds s.mu, so a check-in can never
// race a session across its expiry boundary.
func (s *AttendanceService) sweepLocked(now time.Time) {
	for _, sessionID := range s.SessionRepo.ExpireSweep(now) {
		s.AttendanceRepo.PurgeSession(sessionID)
		log.Printf("Swept expired session %s", sessionID)
	}
}

func (s *AttendanceService) trackCheckInErr(err error) {
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		utils.TrackCheckIn("session_not_found")
	case errors.Is(err, model.ErrSessionExpired):
		utils.TrackCheckIn("session_expired")
	case errors.Is(err, model.ErrDuplicateDevice):
		utils.TrackCheckIn("duplicate_device")
	case errors.Is(err, model.ErrInvalidCoordinates):
		utils.TrackCheckIn("invalid_coordinates")
	default:
		utils.TrackCheckIn("error")
	}
}
