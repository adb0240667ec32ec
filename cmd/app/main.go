package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/barovia-dm/tracker/internal/alchemy"
	"github.com/barovia-dm/tracker/internal/auth"
	"github.com/barovia-dm/tracker/internal/campaign"
	"github.com/barovia-dm/tracker/internal/config"
	"github.com/barovia-dm/tracker/internal/database"
	"github.com/barovia-dm/tracker/internal/database/postgres"
	"github.com/barovia-dm/tracker/internal/handler"
	"github.com/barovia-dm/tracker/internal/logger"
	"github.com/barovia-dm/tracker/internal/server"
)

const (
	dbMaxConnections = 20
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
	shutdownTimeout  = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "barovia-tracker", version, cfg.Environment, cfg.Environment == "dev"))
	slog.Info("Starting campaign tracker", "environment", cfg.Environment, "version", version)

	handler.InitValidator()

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), cfg.GetDBConnString()); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.Name = cfg.SessionCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Secure = cfg.SessionSecure
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	alchemyRepo := postgres.NewAlchemyRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	loginRepo := postgres.NewLoginRepository(pool)

	alchemySvc := alchemy.NewService(alchemyRepo)
	campaignSvc := campaign.NewService(campaignRepo)
	authSvc := auth.NewService(loginRepo)

	srv := server.NewServer(cfg.Port, pool, sessions, alchemySvc, campaignSvc, authSvc)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
