package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/shopdesk-pos/internal/config"
	domainRepo "github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/handler"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/middleware"
	"github.com/sangkips/shopdesk-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Cart     *handler.CartHandler
	Sale     *handler.SaleHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.OperatorRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewOperatorRateLimiter(
				middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
			)
		}
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Catalog
	protected.GET("/products", h.Product.List)
	protected.GET("/customers", h.Customer.List)

	// Carts
	registerCartRoutes(protected, h, deps)

	// Sales
	registerSaleRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	carts := protected.Group("/carts")
	{
		carts.POST("", h.Cart.Open)
		carts.GET("/:id", h.Cart.Get)
		carts.DELETE("/:id", h.Cart.Discard)
		carts.POST("/:id/items", h.Cart.AddItem)
		carts.PUT("/:id/items/:product_id", h.Cart.UpdateItem)
		carts.DELETE("/:id/items/:product_id", h.Cart.RemoveItem)
		carts.POST("/:id/reset", h.Cart.Reset)
		carts.PUT("/:id/checkout", h.Cart.SetCheckout)
		// A retried submit with the same Idempotency-Key replays the first invoice
		carts.POST("/:id/submit", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Cart.Submit)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/reprint", h.Sale.Reprint)
		sales.GET("/:id/invoice.pdf", h.Sale.InvoicePDF)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
