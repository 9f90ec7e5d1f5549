package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-company-repository/internal/config"
	"github.com/goliatone/go-company-repository/internal/httpapi"
	"github.com/goliatone/go-company-repository/pkg/di"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	envFile := flag.String("env", ".env", "path to a .env file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer container.Close()

	logger := container.Logger()
	logger.Info("starting company service",
		"db_driver", cfg.Database.Driver,
		"cache_backend", cfg.Cache.Backend,
		"cache_ttl", cfg.Cache.TTL,
	)

	if cfg.Warmup.Enabled {
		if n, err := container.CacheWarmer().Run(ctx); err != nil {
			logger.Warn("cache warm-up failed", "error", err)
		} else {
			logger.Info("cache warmed", "companies", n)
		}
	}

	server := httpapi.NewServer(
		cfg.HTTP.Addr,
		container.Router(),
		cfg.HTTP.ReadTimeout,
		cfg.HTTP.WriteTimeout,
		cfg.HTTP.ShutdownTimeout,
		logger,
	)
	if err := server.Run(ctx); err != nil {
		logger.Error("http server stopped", "error", err)
		container.Close()
		os.Exit(1)
	}
}
