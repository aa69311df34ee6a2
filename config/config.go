package config

import (
	"main/utils"
	"time"
)

type ServerConfig struct {
	Port          string
	AttendBaseURL string        // frontend origin embedded in QR attend links
	ExportDir     string        // where per-class CSV files land
	SweepInterval time.Duration // periodic expiry sweep cadence
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:          utils.GetEnvAsString("PORT", "5000"),
		AttendBaseURL: utils.GetEnvAsString("FRONTEND_BASE_URL", "http://localhost:3000"),
		ExportDir:     utils.GetEnvAsString("EXPORT_DIR", "."),
		SweepInterval: utils.GetEnvAsDuration("SWEEP_INTERVAL", time.Minute),
	}
}
