package main

import (
	"log"

	"github.com/lookshare/backend/internal/router"
	"github.com/lookshare/backend/pkg/config"
	"github.com/lookshare/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure the connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Mongo, cfg); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
