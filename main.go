package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cleanic/internal/config"
	"cleanic/internal/obs"
	"cleanic/internal/repository"
	"cleanic/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load .env before the config file so ${VAR} references resolve
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	// Load configuration; missing secrets abort startup
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection pool (bounded, shared process-wide)
	db, err := repository.NewPostgresDB(cfg.Database.URL, repository.PoolSettings{
		MaxOpenConns:   cfg.Database.MaxOpenConns,
		MaxIdleTime:    cfg.Database.MaxIdleTime,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Register HTTP metrics
	obs.Init()

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger)
	go srv.Run(cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}
