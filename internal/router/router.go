package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/config"
	"github.com/tmoreau/boutique-backend/internal/app/controller"
	"github.com/tmoreau/boutique-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	settingsController *controller.SettingsController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
	orderController    *controller.OrderController
	pageController     *controller.PageController
	uploadController   *controller.UploadController
	feedController     *controller.FeedController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	settingsController *controller.SettingsController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	pageController *controller.PageController,
	uploadController *controller.UploadController,
	feedController *controller.FeedController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		settingsController: settingsController,
		cartController:     cartController,
		checkoutController: checkoutController,
		orderController:    orderController,
		pageController:     pageController,
		uploadController:   uploadController,
		feedController:     feedController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BOUTIQUE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
		}

		// Storefront surface, no auth.
		v1.GET("/settings", r.settingsController.GetSettings)
		v1.GET("/pages", r.pageController.ListPages)
		v1.GET("/pages/:slug", r.pageController.GetPage)

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items", r.cartController.UpdateItem)
			cart.DELETE("/items", r.cartController.RemoveItem)
		}

		checkout := v1.Group("/checkout")
		{
			checkout.POST("/advance", r.checkoutController.Advance)
			checkout.POST("/back", r.checkoutController.Back)
			checkout.POST("/dispatch", r.checkoutController.Dispatch)
		}

		// Admin surface.
		admin := v1.Group("", r.authMiddleware.RequireAdmin())
		{
			admin.PUT("/settings", r.settingsController.UpdateSettings)
			admin.POST("/settings", r.settingsController.UpdateSettings)
			admin.POST("/cache/invalidate", r.settingsController.InvalidateCache)

			admin.POST("/upload", r.uploadController.Upload)
			admin.DELETE("/upload", r.uploadController.Delete)

			admin.GET("/admin/orders", r.orderController.ListOrders)
			admin.GET("/admin/orders/export", r.orderController.Export)
			admin.PUT("/admin/orders/:id/status", r.orderController.UpdateStatus)

			admin.GET("/admin/feed", r.feedController.Connect)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Cart-Session")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cart-Session, Content-Disposition")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
