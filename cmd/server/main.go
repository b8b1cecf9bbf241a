package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/metalbaza/finledger/internal/adapter/http"
	"github.com/metalbaza/finledger/internal/adapter/http/handler"
	postgresRepo "github.com/metalbaza/finledger/internal/adapter/repository/postgres"
	redisRepo "github.com/metalbaza/finledger/internal/adapter/repository/redis"
	"github.com/metalbaza/finledger/internal/infrastructure/config"
	"github.com/metalbaza/finledger/internal/infrastructure/logger"
	"github.com/metalbaza/finledger/internal/infrastructure/metrics"
	"github.com/metalbaza/finledger/internal/infrastructure/postgres"
	"github.com/metalbaza/finledger/internal/infrastructure/redis"
	"github.com/metalbaza/finledger/internal/infrastructure/sched"
	"github.com/metalbaza/finledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply migrations
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	idGen := postgresRepo.NewULIDGenerator()
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool, idGen)
	statsRepo := postgresRepo.NewStatsRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	statsUC := usecase.NewStatsUseCase(statsRepo, cache, m, log)

	// Stats invalidation is debounced: a burst of postings produces one
	// cache bump after the burst goes quiet.
	scheduler := sched.New(cfg.StatsDebounce, statsUC.InvalidateCache)
	defer scheduler.Close()

	accountUC := usecase.NewAccountUseCase(accountRepo, transactionRepo, idGen, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen, log)
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, accountRepo, categoryRepo, idGen, m, scheduler, log)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, categoryRepo, transactionRepo, idGen, m, scheduler, log)
	settlementUC := usecase.NewSettlementUseCase(txManager, accountRepo, categoryRepo, transactionRepo, customerRepo, idGen, retrier, m, scheduler, log)
	importUC := usecase.NewImportUseCase(transactionRepo, categoryRepo, idGen, m, log)

	// Seed default accounts and categories
	if cfg.SeedDefaults {
		if err := accountUC.InitDefaults(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed default accounts")
		}
		if err := categoryUC.InitDefaults(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed default categories")
		}
	}

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	statsHandler := handler.NewStatsHandler(statsUC)
	importHandler := handler.NewImportHandler(importUC, cfg.ImportMaxBodySize)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		CategoryHandler:    categoryHandler,
		TransactionHandler: transactionHandler,
		TransferHandler:    transferHandler,
		SettlementHandler:  settlementHandler,
		StatsHandler:       statsHandler,
		ImportHandler:      importHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
