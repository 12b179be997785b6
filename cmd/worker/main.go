package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/etalase/etalase/internal/app"
	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/catalog/products"
	jobmetrics "github.com/etalase/etalase/internal/jobs"
	"github.com/etalase/etalase/internal/platform/cache"
	"github.com/etalase/etalase/internal/platform/db"
	"github.com/etalase/etalase/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

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
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, warming into nothing", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	fieldCache := fields.NewCache(redisClient, cfg.FieldCacheTTL)
	fieldsRepo := fields.NewRepository(pool)
	// The worker never schedules warmups for itself.
	fieldsService := fields.NewService(fieldsRepo, fieldCache, nil, logger)

	categoriesRepo := categories.NewRepository(pool)
	categoriesService := categories.NewService(categoriesRepo, fieldsService, nil, logger)

	resolver := enrich.NewResolver(fieldsService, logger)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, categoriesService, resolver)

	metrics := jobmetrics.NewMetrics(nil)
	warmupJob := jobs.NewCatalogWarmupJob(fieldsService, logger, metrics)
	reindexJob := jobs.NewCatalogReindexJob(categoriesService, productsService, resolver, logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCatalogWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskCatalogReindex, Handler: reindexJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
