package model

import "time"

type AttendanceRecord struct {
	SessionID   string    `json:"sessionId"`
	StudentName string    `json:"studentName"`
	RollNo      string    `json:"rollNo"`
	Course      string    `json:"course"`
	ClassName   string    `json:"className"`
	TeacherName string    `json:"teacherName"`
	Timestamp   time.Time `json:"timestamp"`
	Distance    float64   `json:"distance"` // meters from the class location, one decimal
}

// DeviceUsage marks a device fingerprint as spent for one session. A device
// gets exactly one successful check-in per session; the entry lives until the
// session itself is swept.
type DeviceUsage struct {
	SessionID   string    `json:"sessionId"`
	Fingerprint string    `json:"fingerprint"`
	FirstUsedAt time.Time `json:"firstUsedAt"`
}
