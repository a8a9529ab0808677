package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vidtrack/internal/config"
	"vidtrack/internal/database"
	"vidtrack/internal/logging"
	"vidtrack/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logging.Error(logger, "database error", err)
		os.Exit(1)
	}

	r, err := server.NewRouter(cfg, db, logger)
	if err != nil {
		logging.Error(logger, "router error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logging.Error(logger, "server error", err)
		os.Exit(1)
	}
}
