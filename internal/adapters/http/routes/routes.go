package routes

import (
	"time"

	"github.com/Rezawa7/BookLibrary/internal/adapters/http/handlers"
	"github.com/Rezawa7/BookLibrary/internal/adapters/http/middleware"
	"github.com/Rezawa7/BookLibrary/internal/adapters/persistence/repositories"
	"github.com/Rezawa7/BookLibrary/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	catalogService := services.NewCatalogService(bookRepo)
	loanService := services.NewLoanService(loanRepo)
	circulationService := services.NewCirculationService(catalogService, loanService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	bookHandler := handlers.NewBookHandler(catalogService, circulationService)
	loanHandler := handlers.NewLoanHandler(loanService, circulationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", middleware.CacheControl(time.Hour), swagger.HandlerDefault)

	// API v1 group - availability state is live data, never cached
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.NoCacheHeaders())

	apiV1.Get("/", healthHandler.APIInfo)

	bookRoutes := apiV1.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler)

	loanRoutes := apiV1.Group("/loans")
	setupLoanRoutes(loanRoutes, loanHandler)
}

// setupBookRoutes configures catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler) {
	router.Get("/", handler.List)
	router.Get("/search", handler.Search)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Get("/active", handler.ListActive)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Borrow)
	router.Put("/:id/return", handler.Return)
}
