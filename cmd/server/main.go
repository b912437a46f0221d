package main

import (
	"log"

	"github.com/hirebridge/backend/internal/logger"
	"github.com/hirebridge/backend/internal/router"
	"github.com/hirebridge/backend/pkg/config"
	"github.com/hirebridge/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize database connection (loads .env)
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Load configuration
	cfg := config.Load()

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	shutdown, err := router.SetupRoutes(e, db.Postgres, cfg, zlog)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}
	defer shutdown()

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
