// Package router assembles the gin engine: global middleware, the
// versioned API group and every route in the storefront and admin
// surfaces.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tazamart/backend/internal/infrastructure/config"
	"github.com/tazamart/backend/internal/infrastructure/logger"
	"github.com/tazamart/backend/internal/interfaces/http/handler"
	"github.com/tazamart/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every handler mounted by the router
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Profile  *handler.ProfileHandler
	Admin    *handler.AdminHandler
	System   *handler.SystemHandler
}

// Setup builds the gin engine with all middleware and routes mounted
func Setup(cfg *config.Config, log *zap.Logger, h Handlers, adminAuth middleware.TokenValidator) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Timeout(cfg.HTTP.RequestTimeout),
	)

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.List)
		products.GET("/:id", h.Catalog.Get)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", h.Cart.View)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
	}

	api.POST("/checkout", h.Checkout.PlaceOrder)

	orders := api.Group("/orders")
	{
		orders.GET("", h.Checkout.ListOrders)
		orders.GET("/:id", h.Checkout.GetOrder)
	}

	profile := api.Group("/profile")
	{
		profile.GET("", h.Profile.GetProfile)
		profile.PUT("", h.Profile.UpdateProfile)
	}

	favorites := api.Group("/favorites")
	{
		favorites.GET("", h.Profile.ListFavorites)
		favorites.POST("/:id/toggle", h.Profile.ToggleFavorite)
	}

	preferences := api.Group("/preferences")
	{
		preferences.GET("", h.Profile.GetPreferences)
		preferences.PUT("", h.Profile.UpdatePreferences)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", h.Admin.Login)

		authed := admin.Group("", middleware.AdminAuth(adminAuth))
		{
			authed.POST("/logout", h.Admin.Logout)
			authed.POST("/products", h.Admin.CreateProduct)
			authed.PUT("/products/:id", h.Admin.UpdateProduct)
			authed.DELETE("/products/:id", h.Admin.DeleteProduct)
			authed.GET("/orders", h.Admin.ListOrders)
			authed.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
			authed.POST("/refresh", h.Admin.Refresh)
		}
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	return cors
}
