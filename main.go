package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"beststore/internal/handlers"
	"beststore/internal/models"
	"beststore/internal/repositories"
	"beststore/internal/services"
	"beststore/pkg/imagestore"
	"beststore/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // empty: in-memory repository
	viper.SetDefault("UPLOAD_DIR", "public/image")
	viper.SetDefault("RABBITMQ_URL", "") // empty: event publishing disabled
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	uploadDir := viper.GetString("UPLOAD_DIR")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, catalog event publishing disabled")
	}

	// --- Initialize Repository ---
	var productRepo repositories.ProductRepository
	if databaseDSN != "" {
		db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory product repository")
		memRepo := repositories.NewMockProductRepository()
		seedProducts(memRepo)
		productRepo = memRepo
	}

	// --- Initialize Image Store ---
	imageStore := imagestore.New(uploadDir)

	// --- Initialize Service and Handler ---
	catalogService := services.NewCatalogService(productRepo, imageStore, publisher)
	productHandler := handlers.NewProductHandler(catalogService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	productHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Other storefront services normally consume catalog_events; this
	// consumer logs them so a standalone deployment drains the queue.
	if mqClient, ok := publisher.(*rabbitmq.Client); ok {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
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

// seedProducts populates the in-memory repository with some initial
// catalog entries so the listing is not empty on a fresh start.
func seedProducts(repo repositories.ProductRepository) {
	now := time.Now()
	discount := 999.00
	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Price: 1200.00, DiscountPrice: &discount, Category: models.CategoryElectronics, Status: models.StatusAvailable, CreatedAt: now},
		{Name: "Keyboard", Description: "Mechanical keyboard", Price: 75.00, Category: models.CategoryElectronics, Status: models.StatusAvailable, CreatedAt: now},
		{Name: "Running Shoes", Description: "Lightweight trainers", Price: 89.00, Category: models.CategorySports, Status: models.StatusAvailable, CreatedAt: now},
	}

	for i := range products {
		if err := repo.Save(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %d)", products[i].Name, products[i].ID)
		}
	}
}
