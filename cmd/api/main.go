package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("env", cfg.App.Env).Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize image store with S3 and local fallback
	fileStore, err := storage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.UploadsURL(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize image store: %w", err)
	}

	var s3Store storage.Store
	if cfg.Storage.S3Enabled {
		s3Store, err = storage.NewS3Store(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, cfg.Storage.S3Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 image store, falling back to local file system only")
			s3Store = nil
		}
	} else {
		logger.Info().Msg("using local file system for product images (S3 disabled)")
	}
	images := storage.NewFallbackStore(s3Store, fileStore, cfg.Storage.S3Enabled, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	tokenRepo := repository.NewTokenRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize services
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(userRepo, tokenRepo, tokens, logger)
	userService := service.NewUserService(userRepo, logger)
	productService := service.NewProductService(productRepo, images, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, logger)

	// Initialize HTTP handlers
	exposeErrors := !cfg.App.IsProduction()
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, exposeErrors, logger),
		Admin:    handler.NewAdminHandler(userService, productService, exposeErrors, logger),
		Product:  handler.NewProductHandler(productService, exposeErrors, logger),
		Cart:     handler.NewCartHandler(cartService, exposeErrors, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, exposeErrors, logger),
		Order:    handler.NewOrderHandler(orderService, exposeErrors, logger),
	}

	// Initialize router
	mux := router.New(handlers, authService, router.Options{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		UploadDir:     cfg.Storage.UploadDir,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
