package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/logger"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/seed"
	"catalog/internal/services"
	"catalog/pkg/gemini"
	"catalog/pkg/openai"
	"catalog/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("catalog: %v", err)
	}
}

// run wires the application and serves until SIGINT or SIGTERM. Resources opened
// here are released before it returns, including on startup failures.
func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zapLogger, err := logger.New(cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zapLogger.Sync()

	// --- Initialize Repository ---
	productRepo, db, err := openRepository(cfg.Database, zapLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize product store: %w", err)
	}
	if db != nil {
		defer database.Close(db)
	}

	// --- Initialize Description Generator ---
	generator, closeGenerator, err := newGenerator(context.Background(), cfg.Generator)
	if err != nil {
		return fmt.Errorf("failed to initialize description generator: %w", err)
	}
	defer closeGenerator()
	if cfg.Generator.APIKey() == "" {
		zapLogger.Warn("No API key configured; single product reads will fail",
			zap.String("provider", cfg.Generator.Provider))
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:   cfg.RabbitMQ.URL,
			Queue: cfg.RabbitMQ.Queue,
		}, zapLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		logEvent := func(event models.ProductEvent) error {
			zapLogger.Info("Received product event",
				zap.String("type", event.Type),
				zap.String("product_id", event.ProductID),
				zap.Time("occurred_at", event.OccurredAt),
			)
			return nil
		}
		if err := mqClient.ConsumeProductEvents(logEvent); err != nil {
			zapLogger.Error("Failed to start RabbitMQ consumer", zap.Error(err))
		}
	}

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, generator, publisher, zapLogger)

	if cfg.SeedOnStart {
		if _, err := seed.NewSeeder(productService, zapLogger).Run(context.Background()); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	app := newApp(productService, zapLogger)

	// --- Start HTTP Server ---
	zapLogger.Info("Starting server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("env", cfg.Server.Env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("generator", cfg.Generator.Provider),
	)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}
	zapLogger.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLogger.Error("Error during Fiber shutdown", zap.Error(err))
	}

	zapLogger.Info("Server gracefully stopped")
	return nil
}

// newApp builds the Fiber application with middleware and routes.
func newApp(productService *services.ProductService, zapLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "catalog",
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(zapLogger))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		count, err := productService.CountProducts(c.UserContext())
		if err != nil {
			zapLogger.Error("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"products": count,
		})
	})

	// --- Product Routes ---
	handlers.NewProductHandler(productService, zapLogger).RegisterRoutes(app)

	return app
}

// openRepository selects the product store. The returned *gorm.DB is nil for the
// in-memory store.
func openRepository(cfg config.DatabaseConfig, zapLogger *zap.Logger) (repositories.ProductRepository, *gorm.DB, error) {
	if cfg.Driver == "memory" {
		return repositories.NewMemoryProductRepository(), nil, nil
	}

	db, err := database.Open(cfg.Driver, cfg.DSN, zapLogger)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewGORMProductRepository(db), db, nil
}

// newGenerator builds the configured description generator and its cleanup func.
func newGenerator(ctx context.Context, cfg config.GeneratorConfig) (services.DescriptionGenerator, func(), error) {
	if cfg.Provider == "gemini" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}

	client := openai.NewClient(openai.Config{
		Endpoint:   cfg.OpenAIEndpoint,
		APIKey:     cfg.OpenAIAPIKey,
		APIVersion: cfg.OpenAIAPIVersion,
		Auth:       cfg.OpenAIAuth,
		Model:      cfg.OpenAIModel,
		Timeout:    cfg.Timeout,
	})
	return client, func() {}, nil
}
