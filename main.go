package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/streadway/amqp"

	"pantry/internal/config"
	"pantry/internal/handlers"
	"pantry/internal/middleware"
	"pantry/internal/repositories"
	"pantry/internal/services"
	"pantry/pkg/rabbitmq"
	"pantry/pkg/spoonacular"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	appPort := cfg.GetString("APP_PORT")

	// --- Database ---
	db, err := config.InitDB(cfg.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- RabbitMQ ---
	// Eventing is optional: without a broker the app still serves
	// requests, it just skips publishing inventory events.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.GetString("RABBITMQ_URL")})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, inventory events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	catalogRepo := repositories.NewGORMCatalogRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo)
	catalogService := services.NewCatalogService(catalogRepo, inventoryRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	inventoryService := services.NewInventoryService(inventoryRepo, catalogRepo, publisher)
	recipeClient := spoonacular.NewClient(cfg.GetString("SPOONACULAR_API_KEY"))
	recipeService := services.NewRecipeService(inventoryRepo, recipeClient)

	// --- Session store ---
	store := session.New()

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, store)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, catalogService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	// Public routes
	authHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Everything else requires a logged-in session, catalog mutations
	// included.
	protected := app.Group("", middleware.LoginRequired(store))
	inventoryHandler.RegisterRoutes(protected)
	catalogHandler.RegisterRoutes(protected)
	recipeHandler.RegisterRoutes(protected)

	// --- Inventory event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for inventory events...")
		err := mqClient.Consume(func(msg amqp.Delivery) error {
			log.Printf("Inventory event %s: %s", msg.Type, string(msg.Body))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
