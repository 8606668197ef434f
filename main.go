package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davral/tickerdesk/internal/cache"
	"github.com/davral/tickerdesk/internal/config"
	"github.com/davral/tickerdesk/internal/handler"
	"github.com/davral/tickerdesk/internal/repository/mongodb"
	"github.com/davral/tickerdesk/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := mongodb.New(connectCtx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	if err := db.EnsureIndexes(connectCtx); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	slog.Info("database indexes ensured")

	redisCache, err := cache.New(connectCtx, cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(db.Identities(), db.Profiles(), tokenService, cfg.BcryptCost)
	profileService := service.NewProfileService(db.Profiles())
	companyService := service.NewCompanyService(db.Companies(), redisCache, cfg.CacheTTL)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, profileService, companyService)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.RequestID(handler.RequestLogger(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
