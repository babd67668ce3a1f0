package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ShikhaMathur02/Visitor-System/config"
	"github.com/ShikhaMathur02/Visitor-System/internal/api/handler"
	"github.com/ShikhaMathur02/Visitor-System/internal/api/router"
	"github.com/ShikhaMathur02/Visitor-System/internal/notify"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
	"github.com/ShikhaMathur02/Visitor-System/internal/service"
	"github.com/ShikhaMathur02/Visitor-System/pkg/database"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
	applogger "github.com/ShikhaMathur02/Visitor-System/pkg/logger"
	"github.com/ShikhaMathur02/Visitor-System/pkg/metrics"
	"github.com/ShikhaMathur02/Visitor-System/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("unwrap sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis, optional: token revocation, rate limiting and the
	// stats cache degrade when it is down
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}

	// 5. tokens
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. metrics and the notification hub
	m := metrics.New()

	hub := notify.NewHub(cfg.Server.CORS.AllowOrigins, m, logger)
	go hub.Run()

	// 7. dependency wiring: Repository -> Service -> Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, hub, logger)
	h := handler.NewHandler(svc, hub, jwtMgr)

	// 8. routes
	engine := router.Setup(cfg, h, jwtMgr, rdb, m, logger)

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
