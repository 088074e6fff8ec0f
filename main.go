package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"heartrisk/config"
	rhttp "heartrisk/http"
	"heartrisk/inference"
	"heartrisk/logging"
	"heartrisk/ml"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, closeLogs, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer closeLogs()

	// 2. Load model and baseline once; they stay fixed for the process lifetime
	svc, err := inference.Open(cfg.Model.Type, cfg.Model.Path, cfg.Model.BaselinePath,
		inference.Options{CacheSize: cfg.Model.CacheSize})
	if err != nil {
		logger.Fatal("failed to load artifacts", zap.Error(err))
	}
	logger.Info("artifacts loaded",
		zap.String("model_type", cfg.Model.Type),
		zap.String("model_path", cfg.Model.Path),
		zap.String("baseline_path", cfg.Model.BaselinePath),
		zap.Int("cache_size", cfg.Model.CacheSize))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Model.Watch {
		if err := ml.WatchArtifacts(ctx, logger, cfg.Model.Path, cfg.Model.BaselinePath); err != nil {
			logger.Warn("artifact watcher disabled", zap.Error(err))
		}
	}

	// 3. Start HTTP server
	server := rhttp.NewServer(rhttp.ServerConfig{
		Port:           cfg.Http.Port,
		ReadTimeout:    cfg.Http.ReadTimeout,
		WriteTimeout:   cfg.Http.WriteTimeout,
		IdleTimeout:    cfg.Http.IdleTimeout,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
		AllowedOrigins: cfg.Http.AllowedOrigins,
	}, svc, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
