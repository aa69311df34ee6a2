package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file; all settings have defaults
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	utils.InitValidator()
}

func setupRouter(svc *usecase.AttendanceService) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20)) // 1 MiB

	api := router.Group("/api")
	api.Use(middleware.NoStoreMiddleware())
	{
		api.POST("/generate-qr", func(c *gin.Context) {
			handler.CreateSessionHandler(c, svc)
		})
		api.POST("/mark-attendance", func(c *gin.Context) {
			handler.CheckInHandler(c, svc)
		})
		api.GET("/attendance/:sessionId", func(c *gin.Context) {
			handler.GetAttendanceHandler(c, svc)
		})
		api.GET("/session/:sessionId", func(c *gin.Context) {
			handler.GetSessionHandler(c, svc)
		})
	}

	router.GET("/health", func(c *gin.Context) {
		handler.HealthHandler(c, svc)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func main() {
	cfg := config.LoadServerConfig()

	svc := &usecase.AttendanceService{
		SessionRepo:    repository.NewSessionRepo(),
		AttendanceRepo: repository.NewAttendanceRepo(),
		Exporter:       services.NewCSVExporter(cfg.ExportDir),
		AttendBaseURL:  cfg.AttendBaseURL,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.StartSweeper(ctx, cfg.SweepInterval)

	router := setupRouter(svc)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server shutdown complete")
}
