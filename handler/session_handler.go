package handler

import (
	"errors"
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CreateSessionHandler opens a new attendance session and returns its QR code.
func CreateSessionHandler(c *gin.Context, svc *usecase.AttendanceService) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload")
		return
	}

	session, qrCode, err := svc.CreateSession(req.ClassName, req.TeacherName, req.Latitude, req.Longitude)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCoordinates) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.Created(c, dto.CreateSessionResponse{
		SessionID: session.SessionID,
		QRCode:    qrCode,
		ExpiresAt: session.ExpiresAt,
	})
}

// GetSessionHandler reports a session's status for the attend page.
func GetSessionHandler(c *gin.Context, svc *usecase.AttendanceService) {
	sessionID := c.Param("sessionId")

	session, err := svc.SessionStatus(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSessionNotFound):
			utils.NotFound(c, "Session not found")
		case errors.Is(err, model.ErrSessionExpired):
			utils.BadRequest(c, "Session expired")
		default:
			utils.InternalError(c, "Failed to fetch session")
		}
		return
	}

	utils.Success(c, dto.ToSessionStatusResponse(session))
}
