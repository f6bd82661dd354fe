package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/api/rest"
	"github.com/openlot/auction-exchange-backend/internal/infrastructure/cache"
	"github.com/openlot/auction-exchange-backend/internal/infrastructure/config"
	"github.com/openlot/auction-exchange-backend/internal/infrastructure/repository"
	"github.com/openlot/auction-exchange-backend/internal/infrastructure/telemetry"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	listings := repository.NewListingRepository(db)
	bids := repository.NewBidRepository(db)
	categories := repository.NewCategoryRepository(db)
	accounts := repository.NewAccountRepository(db)
	limits := cache.NewLimitsCache(
		redisClient,
		repository.NewLimitsRepository(db, cfg.Quota),
		cfg.Quota.LimitsCacheTTL,
		logger,
	)

	quotas := admission.Quotas{
		MaxConcurrentPerSeller:   cfg.Quota.MaxConcurrentAuctions,
		MaxConcurrentPerCategory: cfg.Quota.MaxConcurrentPerCategory,
		MinDescriptionDistance:   cfg.Quota.MinDescriptionDistance,
	}

	bidEngine := admission.NewBidEngine(bids, listings, limits, logger)
	listingEngine := admission.NewListingEngine(listings, limits, quotas, logger)

	handler := rest.NewHandler(bidEngine, listingEngine, listings, categories, accounts, logger)
	server := rest.NewServer(cfg.Server, handler, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}
}
