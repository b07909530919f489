package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/googlehubs/helix-backend/internal/config"
	"github.com/googlehubs/helix-backend/internal/handler"
	"github.com/googlehubs/helix-backend/internal/repository"
	"github.com/googlehubs/helix-backend/internal/service"
	"github.com/googlehubs/helix-backend/pkg/database"
	"github.com/googlehubs/helix-backend/pkg/logger"
	"github.com/googlehubs/helix-backend/pkg/payment"
	"github.com/googlehubs/helix-backend/pkg/utils"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// A missing provider credential is reported per request as a 500, so the
	// process still starts; the database is a hard startup dependency.
	if missing := cfg.MissingKeys(); len(missing) > 0 {
		zapLogger.Warn("missing required configuration, purchase requests will be rejected",
			zap.Strings("keys", missing))
	}
	if cfg.DatabaseURL == "" {
		zapLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}

	// Repositories
	packageRepo := repository.NewCreditPackageRepository(db)

	// Stripe service
	stripeService := payment.NewStripeService(cfg.StripeSecretKey)

	// Validator
	validator := utils.NewValidator()

	// Services
	checkoutService := service.NewCheckoutService(packageRepo, stripeService, cfg, validator)
	packageService := service.NewPackageService(packageRepo)

	// Handlers
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, zapLogger)
	creditPackageHandler := handler.NewCreditPackageHandler(packageService)

	// Router
	app := fiber.New()

	// Permissive CORS: the buy flow is called from the web client before a
	// user account necessarily exists, so every response carries these headers.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization, X-Client-Info, Apikey",
	}))
	app.Use(fiberlog.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Checkout
	api.Post("/payments/purchase-credits", checkoutHandler.PurchaseCredits)

	// Credit package catalog (read-only, public)
	api.Get("/payments/packages", creditPackageHandler.GetAllPackages)
	api.Get("/packages/:id", creditPackageHandler.GetPackageByID)

	zapLogger.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
