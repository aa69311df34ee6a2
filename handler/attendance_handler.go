package handler

import (
	"errors"
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CheckInHandler marks a student present. The device fingerprint is derived
// from request metadata here at the transport edge; the core only ever sees
// it as an opaque string.
func CheckInHandler(c *gin.Context, svc *usecase.AttendanceService) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	distance, err := svc.CheckIn(usecase.CheckInInput{
		SessionID:         req.SessionID,
		StudentName:       req.StudentName,
		RollNo:            req.RollNo,
		Course:            req.Course,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		DeviceFingerprint: utils.DeviceFingerprint(c),
	})
	if err != nil {
		var tooFar *model.TooFarError
		switch {
		case errors.Is(err, model.ErrSessionNotFound):
			utils.NotFound(c, "Session not found")
		case errors.Is(err, model.ErrSessionExpired):
			utils.BadRequest(c, "Session expired")
		case errors.As(err, &tooFar):
			utils.BadRequest(c, tooFar.Error())
		case errors.Is(err, model.ErrDuplicateDevice):
			utils.Conflict(c, "Device already used for this session")
		case errors.Is(err, model.ErrDuplicateStudent):
			utils.Conflict(c, "Already marked present")
		case errors.Is(err, model.ErrInvalidCoordinates):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, "Failed to mark attendance")
		}
		return
	}

	utils.Success(c, dto.CheckInResponse{
		Message:  "Attendance marked successfully",
		Distance: distance,
	})
}

// GetAttendanceHandler lists a session's committed records in commit order.
// An unknown session yields an empty list, matching how teachers poll this
// endpoint before anyone has checked in.
func GetAttendanceHandler(c *gin.Context, svc *usecase.AttendanceService) {
	sessionID := c.Param("sessionId")
	records := svc.Records(sessionID)
	utils.Success(c, gin.H{
		"records": dto.ToAttendanceRecordResponses(records),
	})
}
