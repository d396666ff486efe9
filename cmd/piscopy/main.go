package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"piscopy/internal/api"
	"piscopy/internal/api/handlers"
	"piscopy/internal/repository"
	"piscopy/internal/service"
	"piscopy/internal/store"
	"piscopy/pkg/auth"
	"piscopy/pkg/config"
	"piscopy/pkg/logger"

	"go.uber.org/zap"
)

// @title Piscopy API
// @version 1.0
// @description Shop-management service for a photocopy shop: customer photo gallery and billing documents
// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting piscopy service")

	// Remote document store
	storeClient := store.NewClient(&cfg.Store, appLogger)

	// Repositories
	userRepo := repository.NewUserRepository(storeClient, appLogger)
	photoRepo := repository.NewPhotoRepository(storeClient, appLogger)
	docRepo := repository.NewDocumentRepository(storeClient, appLogger)

	// JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	photoService := service.NewPhotoService(photoRepo, appLogger)
	docService := service.NewDocumentService(docRepo, cfg.Documents.StoreSync, appLogger)

	// Warm the in-memory mirrors. A failed load is not fatal: the service
	// starts with empty collections and the store stays reachable per call.
	ctx := context.Background()
	if err := photoService.Load(ctx); err != nil {
		appLogger.Warn("Failed to load photos from store", zap.Error(err))
	}
	if err := docService.Load(ctx); err != nil {
		appLogger.Warn("Failed to load documents from store", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	photoHandler := handlers.NewPhotoHandler(photoService, appLogger)
	docHandler := handlers.NewDocumentHandler(docService, &cfg.Shop, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, photoHandler, docHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
