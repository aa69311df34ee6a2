package dto

import (
	"main/model"
	"time"
)

type CreateSessionRequest struct {
	ClassName   string  `json:"className" binding:"required"`
	TeacherName string  `json:"teacherName" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"latitude"`
	Longitude   float64 `json:"longitude" binding:"longitude"`
}

type CreateSessionResponse struct {
	SessionID string    `json:"sessionId"`
	QRCode    string    `json:"qrCode"` // inline data URI, ready for an <img> tag
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionStatusResponse struct {
	ClassName   string    `json:"className"`
	TeacherName string    `json:"teacherName"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func ToSessionStatusResponse(session *model.Session) SessionStatusResponse {
	return SessionStatusResponse{
		ClassName:   session.ClassName,
		TeacherName: session.TeacherName,
		ExpiresAt:   session.ExpiresAt,
	}
}
