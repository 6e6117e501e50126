package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kennel-backend/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env for development; production uses system env vars
	if err := godotenv.Load(); err != nil {
		logger.Init("development")
		logger.Warn("No .env file found, using system environment variables", nil)
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	env := getEnv("APP_ENV", "development")
	logger.Init(env)
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("🌍 Environment", map[string]interface{}{"env": env})

	// ========================================
	// START SERVER
	// ========================================
	// main() stays a thin entry point; Serve() owns the lifecycle
	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
