package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cvds/identity-service/internal/api"
	"github.com/cvds/identity-service/internal/core/ports"
	"github.com/cvds/identity-service/internal/core/service"
	"github.com/cvds/identity-service/internal/infrastructure/config"
	"github.com/cvds/identity-service/internal/infrastructure/db/postgres"
	"github.com/cvds/identity-service/internal/infrastructure/db/redis"
	"github.com/cvds/identity-service/internal/infrastructure/session"
	"github.com/cvds/identity-service/internal/token"
	"github.com/cvds/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	codec := token.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL)

	var (
		rdb   *goredis.Client
		store ports.SessionStore
	)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, codec, log)
	default:
		store = session.NewMemoryStore(codec, log)
	}

	userRepo := postgres.NewUserRepository(pool)
	authService := service.NewAuthService(userRepo, store, codec, log)
	userService := service.NewUserService(userRepo, log)

	cleaner, err := session.NewCleaner(store, cfg.SessionCleanupInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session cleaner setup failed")
	}
	cleaner.Start()
	defer cleaner.Stop()

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		UserService: userService,
		Postgres:    pool,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("session_backend", cfg.SessionBackend).
		Msg("identity service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
