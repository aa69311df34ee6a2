package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the resource numbers worth watching for
// an in-memory service.
func HealthHandler(c *gin.Context, svc *usecase.AttendanceService) {
	utils.Success(c, gin.H{
		"status":         "ok",
		"activeSessions": svc.SessionRepo.ActiveCount(),
		"cpuPercent":     utils.GetCPUUsage(),
		"memoryPercent":  utils.GetMemoryUsage(),
	})
}
