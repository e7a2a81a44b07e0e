// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/config"
	"github.com/stitchworks/apparel-backend/internal/handlers"
	"github.com/stitchworks/apparel-backend/internal/middleware"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

// Initialize wires services and routes. cache may be nil.
func Initialize(db *gorm.DB, cache redis.Cmdable, cfg *config.Config) (*gin.Engine, error) {
	logger := logrus.StandardLogger()

	// Initialize services
	storageService, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		return nil, err
	}

	catalogService := services.NewCatalogService(db)
	promotionService := services.NewPromotionService(db, cache, cfg.Redis.PromotionTTL(), logger)
	loyaltyService := services.NewLoyaltyService(db)
	settingsService := services.NewSettingsService(db)
	engine := pricing.NewEngine(logger, cfg.Pricing.Currency)
	quoteService := services.NewQuoteService(catalogService, promotionService, loyaltyService, settingsService, engine, time.Now)
	orderService := services.NewOrderService(db, quoteService, time.Now, logger)
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	pricingHandler := handlers.NewPricingHandler(quoteService)
	orderHandler := handlers.NewOrderHandler(orderService, storageService)
	promotionHandler := handlers.NewPromotionHandler(promotionService, time.Now)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	customerHandler := handlers.NewCustomerHandler(loyaltyService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit(float64(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
		}

		v1.POST("/pricing/quote", pricingHandler.Quote)
		v1.GET("/promotions/active", promotionHandler.Active)
		v1.POST("/uploads", middleware.UploadRateLimit(), uploadHandler.UploadReference)

		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/receipt", orderHandler.Receipt)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		admin.Use(middleware.AdminRequired())
		admin.Use(middleware.AuditLogMiddleware(db))
		{
			promotions := admin.Group("/promotions")
			{
				promotions.GET("", promotionHandler.List)
				promotions.POST("", promotionHandler.Create)
				promotions.GET("/:id", promotionHandler.Get)
				promotions.PUT("/:id", promotionHandler.Update)
				promotions.DELETE("/:id", promotionHandler.Delete)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("/customization", settingsHandler.GetCustomization)
				settings.PUT("/customization", settingsHandler.UpdateCustomization)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", orderHandler.ListOrders)
				adminOrders.GET("/:id", orderHandler.AdminGetOrder)
				adminOrders.POST("/:id/complete", orderHandler.CompleteOrder)
				adminOrders.GET("/:id/uploads", orderHandler.UploadReferences)
			}

			admin.GET("/customers/:id/loyalty", customerHandler.Loyalty)
		}
	}

	return r, nil
}
