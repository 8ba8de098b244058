package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthtrack/healthtrack-go/internal/config"
	"github.com/healthtrack/healthtrack-go/internal/crypto"
	"github.com/healthtrack/healthtrack-go/internal/repository"
	"github.com/healthtrack/healthtrack-go/internal/repository/memory"
	"github.com/healthtrack/healthtrack-go/internal/router"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	tokens, err := crypto.NewTokenService(cfg.JWTSecret)
	if err != nil {
		slog.Error("token service", "error", err)
		os.Exit(1)
	}
	hasher := crypto.NewHasher(crypto.DefaultHashParams())

	deps := router.Deps{Tokens: tokens, CORSOrigins: cfg.CORSOrigins}

	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := openDB(cfg)
		if err != nil {
			slog.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		appointments := repository.NewAppointmentRepository(db, cfg.DBQueryTimeout)
		deps.DB = db
		deps.Auth = service.NewAuthService(repository.NewUserRepository(db, cfg.DBQueryTimeout), tokens, hasher)
		deps.Appointments = service.NewAppointmentService(appointments)
		deps.Health = service.NewHealthService(
			repository.NewPhysicalLogRepository(db, cfg.DBQueryTimeout),
			repository.NewMentalLogRepository(db, cfg.DBQueryTimeout),
			appointments,
		)
	case config.DriverMemory:
		slog.Warn("using in-memory store, data will not survive a restart")
		store := memory.New()
		deps.Auth = service.NewAuthService(store.Users(), tokens, hasher)
		deps.Appointments = service.NewAppointmentService(store.Appointments())
		deps.Health = service.NewHealthService(store.PhysicalLogs(), store.MentalLogs(), store.Appointments())
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func openDB(cfg config.Config) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if cfg.MigrateOnStart {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
