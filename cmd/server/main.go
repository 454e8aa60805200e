package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"loan-applications-api/internal/adapter/http/controller"
	"loan-applications-api/internal/adapter/http/middleware"
	"loan-applications-api/internal/adapter/http/router"
	"loan-applications-api/internal/adapter/repository/memory"
	"loan-applications-api/internal/adapter/repository/postgres"
	"loan-applications-api/internal/adapter/repository/redis"
	"loan-applications-api/internal/config"
	"loan-applications-api/internal/domain"
	"loan-applications-api/internal/logger"
	"loan-applications-api/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Error("store initialization failed", err, logger.Fields{
			"backend": cfg.StoreBackend,
		})
		log.Fatalf("build store: %v", err)
	}
	defer cleanup()

	loanService := services.NewLoanService(store)
	tokenService := services.NewTokenService(cfg.SigningSecret)
	healthService := services.NewHealthService(cfg.Version, store)

	handler := router.New(
		controller.NewLoanController(loanService),
		controller.NewAuthController(tokenService),
		controller.NewHealthController(healthService),
		middleware.BearerAuth(),
		router.Options{
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		},
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("server starting", logger.Fields{
			"addr":    cfg.ListenAddr,
			"backend": cfg.StoreBackend,
			"version": cfg.Version,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited with error", err, nil)
		log.Fatalf("server: %v", err)
	}

	logger.Info("server stopped", nil)
}

func buildStore(ctx context.Context, cfg config.Config) (domain.ApplicationRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewApplicationRepository(db), func() { _ = db.Close() }, nil

	case config.StoreRedis:
		client := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return redis.NewApplicationRepository(client), func() { _ = client.Close() }, nil

	default:
		return memory.NewApplicationRepository(), func() {}, nil
	}
}
