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

	"github.com/etalase/etalase/internal/app"
	"github.com/etalase/etalase/internal/banners"
	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/enrich"
	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/catalog/form"
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/observability"
	"github.com/etalase/etalase/internal/platform/cache"
	"github.com/etalase/etalase/internal/platform/db"
	"github.com/etalase/etalase/internal/rbac"
	"github.com/etalase/etalase/internal/sales/customers"
	"github.com/etalase/etalase/internal/storefront"
	"github.com/etalase/etalase/internal/warranty"
	"github.com/etalase/etalase/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, field cache disabled", slog.Any("error", err))
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

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	fieldCache := fields.NewCache(redisClient, cfg.FieldCacheTTL)
	fieldsRepo := fields.NewRepository(pool)
	fieldsService := fields.NewService(fieldsRepo, fieldCache, jobClient, logger)
	fieldsHandler := fields.NewHandler(logger, fieldsService)
	fieldOptionsHandler := form.NewHandler(logger, fieldsService, form.NewLookupSource(pool))

	categoriesRepo := categories.NewRepository(pool)
	categoriesService := categories.NewService(categoriesRepo, fieldsService, jobClient, logger)
	categoriesHandler := categories.NewHandler(logger, categoriesService)

	resolver := enrich.NewResolver(fieldsService, logger)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, categoriesService, resolver)
	productsHandler := products.NewHandler(logger, productsService)

	customersRepo := customers.NewRepository(pool)
	customersService := customers.NewService(customersRepo)
	customersHandler := customers.NewHandler(logger, customersService)

	bannersRepo := banners.NewRepository(pool)
	bannersService := banners.NewService(bannersRepo)
	bannersHandler := banners.NewHandler(logger, bannersService)

	warrantyRepo := warranty.NewRepository(pool)
	warrantyService := warranty.NewService(warrantyRepo, productsService, customersService, logger)
	warrantyHandler := warranty.NewHandler(logger, warrantyService)

	storefrontService := storefront.NewService(
		productsService, customersService, categoriesService, resolver, bannersService, logger)
	storefrontHandler := storefront.NewHandler(logger, storefrontService)

	rbacService := rbac.NewService()
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}
	permissionsHandler := rbac.NewPermissionsHandler(rbacService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		FieldsHandler:       fieldsHandler,
		FieldOptionsHandler: fieldOptionsHandler,
		CategoriesHandler:   categoriesHandler,
		ProductsHandler:     productsHandler,
		CustomersHandler:    customersHandler,
		BannersHandler:      bannersHandler,
		WarrantyHandler:     warrantyHandler,
		StorefrontHandler:   storefrontHandler,
		RBACMiddleware:      rbacMiddleware,
		PermissionsHandler:  permissionsHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
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
