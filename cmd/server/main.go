package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rezawa7/BookLibrary/internal/adapters/http/middleware"
	"github.com/Rezawa7/BookLibrary/internal/adapters/http/routes"
	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/models"
	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/repositories"
	"github.com/Rezawa7/BookLibrary/internal/config"
	"github.com/Rezawa7/BookLibrary/internal/core/services"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// @title BookLibrary API
// @version 1.0
// @description Library catalog and circulation API

// @host localhost:3000
// @BasePath /api/v1
// @schemes http

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	if err := config.EnsureSearchIndex(db); err != nil {
		log.Fatalf("❌ Failed to create search index: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed demo catalog
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed catalog: %v", err)
	}

	// Start cron service for the daily overdue sweep (08:30)
	cronService := services.NewCronService(services.NewLoanService(repositories.NewLoanRepository(db)))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BookLibrary API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  jsoniter.Marshal,
		JSONDecoder:  jsoniter.Unmarshal,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db for dependency injection)
	routes.Setup(app, db)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
