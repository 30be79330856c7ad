package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/config"
	domainRepo "github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/internal/infrastructure/cache"
	"github.com/sangkips/shopdesk-pos/internal/infrastructure/database"
	"github.com/sangkips/shopdesk-pos/internal/infrastructure/repository"
	"github.com/sangkips/shopdesk-pos/internal/infrastructure/upstream"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/handler"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/middleware"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/routes"
	"github.com/sangkips/shopdesk-pos/pkg/printer"
	"github.com/sangkips/shopdesk-pos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed shop settings from config
	if err := database.SeedShopSettings(db, &cfg.Shop); err != nil {
		log.Printf("Warning: Failed to seed shop settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)
	if !jwtManager.Verifies() {
		log.Printf("Warning: JWT_SECRET not set, operator tokens are decoded without signature checks")
	}

	// Initialize repositories
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Shop backend and catalog cache
	backend := upstream.NewClient(&cfg.Upstream, nil)
	redisClient := cache.NewRedisClient(&cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}
	productCache := cache.NewProductCache(redisClient)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Kind:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: cfg.Printer.Timeout,
	})
	switch {
	case errors.Is(err, printer.ErrNotConfigured):
		log.Println("No receipt printer configured, thermal invoices will not be printed")
	case err != nil:
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	catalogService := service.NewCatalogService(backend, productCache, cfg.Redis.CatalogTTL)
	settingsService := service.NewSettingsService(settingsRepo, database.DefaultShopSettings(&cfg.Shop))
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type)
	cartService := service.NewCartService(catalogService, backend, service.CartServiceConfig{
		IdleTTL: cfg.Cart.IdleTTL,
	})
	cartService.StartCleanup(ctx, cfg.Cart.CleanupInterval)
	saleService := service.NewSaleService(cartService, backend, catalogService, settingsService, printerService)

	go purgeIdempotencyKeys(ctx, idempotencyRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Cart:     handler.NewCartHandler(cartService, saleService),
		Sale:     handler.NewSaleHandler(saleService),
		Product:  handler.NewProductHandler(catalogService),
		Customer: handler.NewCustomerHandler(catalogService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService, settingsService),
	}

	rateLimiter := middleware.NewOperatorRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// purgeIdempotencyKeys deletes expired idempotency keys every hour
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Printf("Failed to purge idempotency keys: %v", err)
			}
		}
	}
}
