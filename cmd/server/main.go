package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/config"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/api/handler"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/api/middleware"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/api/router"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/service"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/database"
	applogger "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/logger"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/redis"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/tracing"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("STAGE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting journal server",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	ctx := context.Background()

	// 3. tracing
	shutdownTracing, err := tracing.Init(ctx, &cfg.Tracing, nil, logger)
	if err != nil {
		logger.Fatal("init tracing failed", zap.Error(err))
	}

	// 4. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 5. holidays used by the working-day calculator
	holidays, err := calendar.Load(ctx, calendar.Sources{
		Dates:    cfg.Calendar.Holidays,
		YAMLFile: cfg.Calendar.HolidaysFile,
		ICS:      cfg.Calendar.HolidaysICS,
	})
	if err != nil {
		logger.Fatal("load holidays failed", zap.Error(err))
	}
	logger.Info("holiday calendar loaded", zap.Int("holidays", len(holidays)))

	// 6. redis is optional; without it mutating routes are not rate limited
	var limiter middleware.RateLimiter
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			limiter = rdb
		}
	}

	// 7. repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, holidays, logger)
	h := handler.NewHandler(svc)

	engine := router.Setup(cfg, h, limiter, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown failed", zap.Error(err))
	}

	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
