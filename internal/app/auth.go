package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"teledetect-platform/internal/config"
	"teledetect-platform/internal/database"
	"teledetect-platform/internal/handler"
	"teledetect-platform/internal/middleware"
	"teledetect-platform/internal/repository"
	"teledetect-platform/internal/router"
	"teledetect-platform/internal/service"
	"teledetect-platform/internal/session"
	"teledetect-platform/internal/token"
)

func NewAuth() (*App, error) {
	cfg, err := config.LoadAuth()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, database.PoolSettings{
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBConnMaxLifetime,
		MaxConnIdleTime:   cfg.DBConnMaxIdleTime,
		HealthCheckPeriod: cfg.DBHealthPeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	slog.Info("connecting to Redis")
	sessions, err := session.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		sessions.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	authService := service.NewAuthService(userRepo, sessions, codec)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)
	metrics := middleware.NewMetrics()

	appRouter := router.NewAuth(cfg, authMiddleware, authHandler, metrics,
		handler.DependencyProbe{Name: "database", Check: db.Health},
		handler.DependencyProbe{Name: "redis", Check: sessions.Ping},
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			func() { _ = sessions.Close() },
			func() { db.Close() },
		},
	}, nil
}
