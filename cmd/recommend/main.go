package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery_recommend/internal/catalog"
	"bakery_recommend/internal/logger"
	"bakery_recommend/internal/metrics"
	"bakery_recommend/internal/server"
	"bakery_recommend/internal/workflow"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置
	cfg, err := InitServerConfig(os.Args[1:])
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger.SetDebug(cfg.Server.Debug)
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 加载菜单，格式错误直接退出
	cat, err := catalog.Load(cfg.Paths.Catalog)
	if err != nil {
		logger.Fatal("Failed to load catalog: %v", err)
	}
	metrics.CatalogItems.Set(float64(cat.Len()))
	logger.Info("Loaded %d menu items from %s", cat.Len(), cfg.Paths.Catalog)

	// 3. 初始化 Pipeline Engine
	engine, err := workflow.NewEngine(cfg.Paths.Pipelines, RegisterNodes())
	if err != nil {
		logger.Fatal("Failed to init engine: %v", err)
	}
	logger.Debug("Pipelines: %v", engine.Scenes())

	// 4. 启动 HTTP Server
	srv := server.NewServer(cat, engine, server.Options{
		AllowOrigins:   cfg.Server.AllowOrigins,
		Debug:          cfg.Server.Debug,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeoutMs) * time.Millisecond,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting HTTP server on port %s...", cfg.Server.Port)
	if err := srv.Run(ctx, ":"+cfg.Server.Port); err != nil {
		logger.Fatal("Server failed: %v", err)
	}
}
