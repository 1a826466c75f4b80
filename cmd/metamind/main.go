package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nidhogg/metamind/internal/api"
	"github.com/nidhogg/metamind/internal/config"
	"github.com/nidhogg/metamind/internal/logging"
	"github.com/nidhogg/metamind/internal/session"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/metamind.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootstrap, _ := zap.NewDevelopment()
		bootstrap.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}

	logger := logging.New(cfg)
	defer logger.Sync()

	logger.Info("Starting Metamind...", zap.String("config", cfgPath))

	sessions := session.NewManager(cfg.Session.TTL(), cfg.Session.SweepInterval(), logger)

	handler := api.NewHandler(sessions, logger)

	port := fmt.Sprintf("%d", cfg.Server.Port)
	if port == "0" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("Metamind listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Metamind...")
	srv.Shutdown(context.Background())
}
