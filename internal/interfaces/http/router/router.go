package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Config holds everything the router needs to wire up the API
type Config struct {
	Logger     *zap.Logger
	HTTPConfig config.HTTPConfig
	JWTService *auth.JWTService

	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	SystemHandler   *handler.SystemHandler
}

// New builds the HTTP router with all middleware and routes.
// Browsing the catalog requires no account; everything touching a cart,
// a checkout or an order does.
func New(cfg Config) *gin.Engine {
	r := gin.New()

	if len(cfg.HTTPConfig.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(cfg.HTTPConfig.TrustedProxies)
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTPConfig.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTPConfig.CORSAllowOrigins
	}
	if len(cfg.HTTPConfig.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTPConfig.CORSAllowMethods
	}
	if len(cfg.HTTPConfig.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTPConfig.CORSAllowHeaders
	}

	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(logger.Recovery(cfg.Logger))
	r.Use(middleware.Secure())
	r.Use(middleware.CORSWithConfig(corsConfig))
	if cfg.HTTPConfig.MaxBodySize > 0 {
		r.Use(middleware.BodyLimit(cfg.HTTPConfig.MaxBodySize))
	}

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		Logger:     cfg.Logger,
	})

	r.GET("/health", cfg.SystemHandler.Health)
	r.GET("/ready", cfg.SystemHandler.Ready)

	api := r.Group("/api/v1")
	{
		api.GET("/health", cfg.SystemHandler.Health)

		products := api.Group("/products")
		{
			products.GET("", cfg.ProductHandler.ListProducts)
			products.GET("/:id", cfg.ProductHandler.GetProduct)

			// Catalog writes are an authenticated back-office concern.
			products.POST("", requireAuth, cfg.ProductHandler.CreateProduct)
			products.PUT("/:id", requireAuth, cfg.ProductHandler.UpdateProduct)
			products.DELETE("/:id", requireAuth, cfg.ProductHandler.DeleteProduct)
			products.POST("/:id/restock", requireAuth, cfg.ProductHandler.RestockProduct)
		}

		cart := api.Group("/cart", requireAuth)
		{
			cart.GET("", cfg.CartHandler.ListItems)
			cart.DELETE("", cfg.CartHandler.Clear)
			cart.POST("/items", cfg.CartHandler.AddItem)
			cart.PUT("/items/:productId", cfg.CartHandler.UpdateItemQuantity)
			cart.DELETE("/items/:productId", cfg.CartHandler.RemoveItem)
		}

		api.POST("/checkout", requireAuth, cfg.CheckoutHandler.Checkout)

		orders := api.Group("/orders", requireAuth)
		{
			orders.GET("", cfg.OrderHandler.ListOrders)
			orders.GET("/:id", cfg.OrderHandler.GetOrder)
		}
	}

	return r
}
