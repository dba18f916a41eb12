package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tallerpro/tallerpro/internal/app"
	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/clients"
	"github.com/tallerpro/tallerpro/internal/devices"
	"github.com/tallerpro/tallerpro/internal/expenses"
	"github.com/tallerpro/tallerpro/internal/orders"
	"github.com/tallerpro/tallerpro/internal/payments"
	"github.com/tallerpro/tallerpro/internal/platform/cache"
	"github.com/tallerpro/tallerpro/internal/platform/db"
	"github.com/tallerpro/tallerpro/internal/products"
	"github.com/tallerpro/tallerpro/internal/reports"
	"github.com/tallerpro/tallerpro/internal/settings"
	"github.com/tallerpro/tallerpro/internal/stats"
	"github.com/tallerpro/tallerpro/internal/storage"
	"github.com/tallerpro/tallerpro/internal/support"
	"github.com/tallerpro/tallerpro/internal/upload"
	"github.com/tallerpro/tallerpro/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	verifier := auth.NewVerifier(cfg.AuthBaseURL, cfg.AuthAPIKey, cfg.GuestTenantID, cfg.AuthCacheTTL, redisClient, logger)

	store, err := storage.NewS3(ctx, storage.S3Config{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		Prefix:        cfg.S3Prefix,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Error("init object storage", slog.Any("error", err))
		os.Exit(1)
	}

	queue, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job queue", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo)
	clientsHandler := clients.NewHandler(logger, clientsService)

	devicesRepo := devices.NewRepository(pool)
	devicesService := devices.NewService(devicesRepo)
	devicesHandler := devices.NewHandler(logger, devicesService)

	settingsRepo := settings.NewRepository(pool)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(logger, settingsService)

	ordersRepo := orders.NewRepository(pool)
	paymentsRepo := payments.NewRepository(pool)
	paymentsService := payments.NewService(paymentsRepo, ordersRepo, settingsService)
	paymentsHandler := payments.NewHandler(logger, paymentsService)

	ordersService := orders.NewService(ordersRepo, clientsRepo, devicesRepo, paymentsService)
	ordersHandler := orders.NewHandler(logger, ordersService)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	expensesRepo := expenses.NewRepository(pool)
	expensesService := expenses.NewService(expensesRepo)
	expensesHandler := expenses.NewHandler(logger, expensesService)

	reportsService := reports.NewService(paymentsService, expensesService, ordersRepo)
	reportsHandler := reports.NewHandler(logger, reportsService)

	statsService := stats.NewService(ordersRepo, paymentsService, expensesService)
	statsHandler := stats.NewHandler(logger, statsService)

	uploadHandler := upload.NewHandler(logger, store, cfg.UploadMaxBytes)
	supportHandler := support.NewHandler(logger, queue, cfg.SupportInbox)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Verifier:        verifier,
		ClientsHandler:  clientsHandler,
		DevicesHandler:  devicesHandler,
		OrdersHandler:   ordersHandler,
		PaymentsHandler: paymentsHandler,
		ProductsHandler: productsHandler,
		ExpensesHandler: expensesHandler,
		SettingsHandler: settingsHandler,
		ReportsHandler:  reportsHandler,
		StatsHandler:    statsHandler,
		UploadHandler:   uploadHandler,
		SupportHandler:  supportHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
