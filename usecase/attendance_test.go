package usecase

import (
	"errors"
	"fmt"
	"main/model"
	"main/repository"
	"sync"
	"testing"
	"time"
)

// recordingExporter captures exported records so tests can wait on the
// fire-and-forget export goroutine.
type recordingExporter struct {
	records chan model.AttendanceRecord
	fail    bool
}

func newRecordingExporter() *recordingExporter {
	return &recordingExporter{records: make(chan model.AttendanceRecord, 16)}
}

func (e *recordingExporter) Export(record *model.AttendanceRecord) error {
	if e.fail {
		return errors.New("sink unavailable")
	}
	e.records <- *record
	return nil
}

func newTestService(exporter Exporter) *AttendanceService {
	return &AttendanceService{
		SessionRepo:    repository.NewSessionRepo(),
		AttendanceRepo: repository.NewAttendanceRepo(),
		Exporter:       exporter,
		AttendBaseURL:  "http://localhost:3000",
	}
}

func checkInAt(sessionID string, lat, lng float64, rollNo, device string) CheckInInput {
	return CheckInInput{
		SessionID:         sessionID,
		StudentName:       "Asha Rao",
		RollNo:            rollNo,
		Course:            "CS101",
		Latitude:          lat,
		Longitude:         lng,
		DeviceFingerprint: device,
	}
}

func TestCreateSession(t *testing.T) {
	svc := newTestService(nil)

	session, qrCode, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if want := session.CreatedAt.Add(10 * time.Minute); !session.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want creation + 10 minutes", session.ExpiresAt)
	}
	if qrCode == "" || qrCode[:22] != "data:image/png;base64," {
		t.Errorf("QR code is not an inline PNG data URI")
	}
}

func TestCreateSessionRejectsInvalidCoordinates(t *testing.T) {
	svc := newTestService(nil)

	if _, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 95, 77.5946); !errors.Is(err, model.ErrInvalidCoordinates) {
		t.Errorf("CreateSession() error = %v, want ErrInvalidCoordinates", err)
	}
	if svc.SessionRepo.ActiveCount() != 0 {
		t.Error("invalid session was stored")
	}
}

func TestCheckInAtClassLocation(t *testing.T) {
	exporter := newRecordingExporter()
	svc := newTestService(exporter)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	distance, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-a"))
	if err != nil {
		t.Fatalf("CheckIn() unexpected error: %v", err)
	}
	if distance != 0.0 {
		t.Errorf("distance = %v, want 0.0", distance)
	}

	records := svc.Records(session.SessionID)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	record := records[0]
	if record.ClassName != "Data Structures" || record.TeacherName != "Prof. Iyer" {
		t.Errorf("record did not denormalize session names: %+v", record)
	}
	if record.Distance != 0.0 {
		t.Errorf("record distance = %v, want 0.0", record.Distance)
	}

	select {
	case exported := <-exporter.records:
		if exported.RollNo != "R001" || exported.ClassName != "Data Structures" {
			t.Errorf("exported wrong record: %+v", exported)
		}
	case <-time.After(2 * time.Second):
		t.Error("committed record never reached the export sink")
	}
}

func TestCheckInTooFar(t *testing.T) {
	svc := newTestService(nil)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	// ~100 m north of the class
	_, err = svc.CheckIn(checkInAt(session.SessionID, 12.9725, 77.5946, "R001", "device-a"))

	var tooFar *model.TooFarError
	if !errors.As(err, &tooFar) {
		t.Fatalf("CheckIn() error = %v, want TooFarError", err)
	}
	if tooFar.Distance < 99 || tooFar.Distance > 101.5 {
		t.Errorf("reported distance = %v, want ~100.1", tooFar.Distance)
	}

	// a failed gate commits nothing
	if got := svc.Records(session.SessionID); len(got) != 0 {
		t.Errorf("rejected check-in left %d records", len(got))
	}
	if svc.AttendanceRepo.HasDeviceUsed(session.SessionID, "device-a") {
		t.Error("rejected check-in left a device-usage entry")
	}
}

func TestCheckInUnknownSession(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.CheckIn(checkInAt("no-such-session", 12.9716, 77.5946, "R001", "device-a"))
	if !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("CheckIn() error = %v, want ErrSessionNotFound", err)
	}
}

func TestCheckInExpiredSession(t *testing.T) {
	svc := newTestService(nil)

	created := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	now := created
	svc.SessionRepo.Now = func() time.Time { return now }

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	now = created.Add(11 * time.Minute)
	_, err = svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-a"))
	if !errors.Is(err, model.ErrSessionExpired) {
		t.Errorf("CheckIn() at creation+11m error = %v, want ErrSessionExpired", err)
	}
}

func TestCheckInDuplicateDevice(t *testing.T) {
	svc := newTestService(nil)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	if _, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-a")); err != nil {
		t.Fatalf("first CheckIn() unexpected error: %v", err)
	}

	// a second student on the same phone is rejected, and keeps being
	// rejected the same way on retry
	for i := 0; i < 3; i++ {
		_, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R002", "device-a"))
		if !errors.Is(err, model.ErrDuplicateDevice) {
			t.Errorf("retry %d: CheckIn() error = %v, want ErrDuplicateDevice", i, err)
		}
	}

	if got := svc.Records(session.SessionID); len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
}

func TestCheckInDuplicateStudent(t *testing.T) {
	svc := newTestService(nil)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	if _, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-a")); err != nil {
		t.Fatalf("first CheckIn() unexpected error: %v", err)
	}

	// same roll number from a second device
	_, err = svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-b"))
	if !errors.Is(err, model.ErrDuplicateStudent) {
		t.Errorf("CheckIn() error = %v, want ErrDuplicateStudent", err)
	}

	// the rejected attempt must not burn the second device
	if svc.AttendanceRepo.HasDeviceUsed(session.SessionID, "device-b") {
		t.Error("failed student gate left the device marked as used")
	}
	if _, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R002", "device-b")); err != nil {
		t.Errorf("device-b blocked after a rejected attempt: %v", err)
	}
}

func TestCheckInConcurrentSameDevice(t *testing.T) {
	svc := newTestService(nil)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, duplicates := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, fmt.Sprintf("R%03d", i), "device-a"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, model.ErrDuplicateDevice):
				duplicates++
			default:
				t.Errorf("CheckIn() unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 || duplicates != n-1 {
		t.Errorf("got %d successes and %d duplicates, want 1 and %d", successes, duplicates, n-1)
	}
	if got := svc.Records(session.SessionID); len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
}

func TestCheckInConcurrentSameStudent(t *testing.T) {
	svc := newTestService(nil)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, duplicates := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", fmt.Sprintf("device-%d", i)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, model.ErrDuplicateStudent):
				duplicates++
			default:
				t.Errorf("CheckIn() unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 || duplicates != n-1 {
		t.Errorf("got %d successes and %d duplicates, want 1 and %d", successes, duplicates, n-1)
	}
}

func TestSweepCascade(t *testing.T) {
	svc := newTestService(nil)

	created := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	now := created
	svc.SessionRepo.Now = func() time.Time { return now }

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if _, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-a")); err != nil {
		t.Fatalf("CheckIn() unexpected error: %v", err)
	}

	now = created.Add(11 * time.Minute)
	svc.Sweep(now)

	if svc.SessionRepo.ActiveCount() != 0 {
		t.Error("swept session still stored")
	}
	if svc.AttendanceRepo.DeviceCount(session.SessionID) != 0 {
		t.Error("device usage survived the sweep cascade")
	}
	if _, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R002", "device-b")); !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("check-in on a swept session error = %v, want ErrSessionNotFound", err)
	}

	// a fresh session with the same class name starts with a clean device set
	fresh, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if _, err := svc.CheckIn(checkInAt(fresh.SessionID, 12.9716, 77.5946, "R001", "device-a")); err != nil {
		t.Errorf("device-a blocked on a fresh session: %v", err)
	}

	// records for the dead session are still listable
	if got := svc.Records(session.SessionID); len(got) != 1 {
		t.Errorf("got %d records for the swept session, want 1", len(got))
	}
}

func TestExportFailureDoesNotFailCheckIn(t *testing.T) {
	exporter := newRecordingExporter()
	exporter.fail = true
	svc := newTestService(exporter)

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	distance, err := svc.CheckIn(checkInAt(session.SessionID, 12.9716, 77.5946, "R001", "device-a"))
	if err != nil {
		t.Fatalf("CheckIn() must not fail on export errors, got: %v", err)
	}
	if distance != 0.0 {
		t.Errorf("distance = %v, want 0.0", distance)
	}
	if got := svc.Records(session.SessionID); len(got) != 1 {
		t.Errorf("got %d records, want 1 (commit must survive export failure)", len(got))
	}
}

func TestSessionStatus(t *testing.T) {
	svc := newTestService(nil)

	created := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	now := created
	svc.SessionRepo.Now = func() time.Time { return now }

	session, _, err := svc.CreateSession("Data Structures", "Prof. Iyer", 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	got, err := svc.SessionStatus(session.SessionID)
	if err != nil {
		t.Fatalf("SessionStatus() unexpected error: %v", err)
	}
	if got.ClassName != "Data Structures" {
		t.Errorf("SessionStatus() class = %s", got.ClassName)
	}

	if _, err := svc.SessionStatus("no-such-session"); !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("SessionStatus() error = %v, want ErrSessionNotFound", err)
	}

	now = created.Add(11 * time.Minute)
	if _, err := svc.SessionStatus(session.SessionID); !errors.Is(err, model.ErrSessionExpired) {
		t.Errorf("SessionStatus() error = %v, want ErrSessionExpired", err)
	}
}
