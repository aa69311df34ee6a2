package dto

import (
	"main/model"
	"time"
)

type CheckInRequest struct {
	SessionID   string  `json:"sessionId" binding:"required"`
	StudentName string  `json:"studentName" binding:"required"`
	RollNo      string  `json:"rollNo" binding:"required"`
	Course      string  `json:"course" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"latitude"`
	Longitude   float64 `json:"longitude" binding:"longitude"`
}

type CheckInResponse struct {
	Message  string  `json:"message"`
	Distance float64 `json:"distance"` // meters, one decimal
}

type AttendanceRecordResponse struct {
	SessionID   string    `json:"sessionId"`
	StudentName string    `json:"studentName"`
	RollNo      string    `json:"rollNo"`
	Course      string    `json:"course"`
	ClassName   string    `json:"className"`
	TeacherName string    `json:"teacherName"`
	Timestamp   time.Time `json:"timestamp"`
	Distance    float64   `json:"distance"`
}

func ToAttendanceRecordResponse(record *model.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		SessionID:   record.SessionID,
		StudentName: record.StudentName,
		RollNo:      record.RollNo,
		Course:      record.Course,
		ClassName:   record.ClassName,
		TeacherName: record.TeacherName,
		Timestamp:   record.Timestamp,
		Distance:    record.Distance,
	}
}

func ToAttendanceRecordResponses(records []model.AttendanceRecord) []AttendanceRecordResponse {
	responses := make([]AttendanceRecordResponse, len(records))
	for i := range records {
		responses[i] = ToAttendanceRecordResponse(&records[i])
	}
	return responses
}
