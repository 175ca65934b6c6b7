package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmoreau/boutique-backend/config"
	"github.com/tmoreau/boutique-backend/internal/app/controller"
	"github.com/tmoreau/boutique-backend/internal/app/repository"
	"github.com/tmoreau/boutique-backend/internal/app/service"
	"github.com/tmoreau/boutique-backend/internal/cart"
	"github.com/tmoreau/boutique-backend/internal/checkout"
	"github.com/tmoreau/boutique-backend/internal/db"
	"github.com/tmoreau/boutique-backend/internal/middleware"
	"github.com/tmoreau/boutique-backend/internal/router"
	"github.com/tmoreau/boutique-backend/internal/scheduler"
	"github.com/tmoreau/boutique-backend/internal/storage"
	"github.com/tmoreau/boutique-backend/internal/websocket"
	"github.com/tmoreau/boutique-backend/pkg/logger"
	"github.com/tmoreau/boutique-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting BOUTIQUE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (cart sessions and settings cache)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	settingsRepo := repository.NewSettingsRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	pageRepo := repository.NewPageRepository(db.GetDB())

	// Initialize admin order feed
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, true)
	authService := service.NewAuthService(settingsRepo, &cfg.JWT)
	orderService := service.NewOrderService(orderRepo)
	pageService := service.NewPageService(pageRepo)

	settings, err := settingsService.Get(context.Background())
	if err != nil {
		logger.Fatal("Failed to load settings", err)
	}

	handoff := checkout.NewHandoff(cfg.Handoff.Channel, cfg.Handoff.LinkBaseURL, settings.ShopName)
	cartStore := cart.NewRedisStore(redis.GetClient())
	checkoutService := service.NewCheckoutService(cartStore, settingsService, orderRepo, handoff, hub)

	// Initialize object storage
	r2 := storage.NewR2Storage(&cfg.Storage)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	settingsController := controller.NewSettingsController(settingsService)
	cartController := controller.NewCartController(checkoutService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(orderService)
	pageController := controller.NewPageController(pageService)
	uploadController := controller.NewUploadController(r2)
	feedController := controller.NewFeedController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the settings cache warmer
	settingsScheduler := scheduler.NewSettingsScheduler(settingsService)
	if err := settingsScheduler.Start(); err != nil {
		logger.Fatal("Failed to start settings scheduler", err)
	}
	defer settingsScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		settingsController,
		cartController,
		checkoutController,
		orderController,
		pageController,
		uploadController,
		feedController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
