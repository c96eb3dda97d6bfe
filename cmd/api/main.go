package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homewares/internal/cache"
	"homewares/internal/config"
	"homewares/internal/database"
	"homewares/internal/handler"
	"homewares/internal/notify"
	"homewares/internal/promo"
	"homewares/internal/repository"
	"homewares/internal/router"
	"homewares/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting homewares API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	deliveryRepo := repository.NewDeliveryRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	returnRepo := repository.NewReturnRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	// Initialize promo validator
	validator, err := newPromoValidator(ctx, cfg.Promo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize promo validator: %w", err)
	}
	defer validator.Close()

	// Initialize notification dispatcher. Without an SMTP host notifications
	// go to the log.
	var notifier notify.Notifier
	if cfg.Notify.SMTPHost != "" {
		notifier = notify.NewEmailNotifier(notify.EmailConfig{
			Host:     cfg.Notify.SMTPHost,
			Port:     cfg.Notify.SMTPPort,
			Username: cfg.Notify.SMTPUsername,
			Password: cfg.Notify.SMTPPassword,
			From:     cfg.Notify.From,
		}, logger)
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Info().Msg("no SMTP host configured, notifications go to the log")
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.Notify.BufferSize, logger)
	defer dispatcher.Close()

	// Initialize report cache. Redis is optional; without it reports are
	// recomputed on every request.
	var reportCache cache.Cache
	if cfg.Redis.Addr != "" {
		reportCache, err = cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, report caching disabled")
			reportCache = cache.NewNoop()
		}
	} else {
		reportCache = cache.NewNoop()
	}
	defer reportCache.Close()

	// Initialize services
	orderService := service.NewOrderService(orderRepo, productRepo, validator, cfg.Promo.DiscountPercent, logger)
	deliveryService := service.NewDeliveryService(deliveryRepo, orderRepo, logger)
	lifecycleService := service.NewLifecycleService(orderRepo, productRepo, customerRepo, deliveryService, dispatcher, logger)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, logger)
	returnsService := service.NewReturnsService(returnRepo, orderRepo, productRepo, lifecycleService, logger)
	reportService := service.NewReportService(reportRepo, reportCache, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	lifecycleHandler := handler.NewLifecycleHandler(lifecycleService, logger)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	returnsHandler := handler.NewReturnsHandler(returnsService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Initialize router
	mux := router.New(
		orderHandler,
		lifecycleHandler,
		deliveryHandler,
		paymentHandler,
		returnsHandler,
		reportHandler,
		cfg.Auth.APIKey,
		logger,
	)

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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newPromoValidator builds the promo validator from configuration, loading
// code lists from S3 when enabled and the local filesystem otherwise. With
// promo codes disabled every code is rejected.
func newPromoValidator(ctx context.Context, cfg config.PromoConfig, logger zerolog.Logger) (promo.Validator, error) {
	if !cfg.Enabled {
		logger.Info().Msg("promo codes disabled")
		return promo.NewDisabledValidator(), nil
	}

	var (
		loader promo.Loader
		paths  []string
	)

	if cfg.S3Enabled {
		s3Loader, err := promo.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system")
			loader = promo.NewFileLoader(logger)
			paths = cfg.FilePaths
		} else {
			loader = s3Loader
			paths = cfg.S3Keys
		}
	} else {
		loader = promo.NewFileLoader(logger)
		paths = cfg.FilePaths
	}

	return promo.NewValidator(ctx, &promo.ValidatorConfig{
		Paths:         paths,
		MinMatchCount: cfg.MinMatchCount,
	}, loader, logger)
}
