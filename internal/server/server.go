package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bakery_recommend/internal/catalog"
	"bakery_recommend/internal/logger"
	"bakery_recommend/internal/workflow"
)

// Options HTTP 服务器选项
type Options struct {
	AllowOrigins   []string
	Debug          bool
	RequestTimeout time.Duration
}

// Server 代表 HTTP API 服务器
type Server struct {
	router  *gin.Engine
	catalog *catalog.Catalog
	engine  *workflow.Engine
	opts    Options
}

// NewServer 创建新的 HTTP 服务器
func NewServer(cat *catalog.Catalog, engine *workflow.Engine, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}

	s := &Server{
		router:  gin.New(),
		catalog: cat,
		engine:  engine,
		opts:    opts,
	}
	s.router.Use(gin.Recovery(), requestID(), accessLog(), s.corsMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.opts.AllowOrigins) == 1 && s.opts.AllowOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.opts.AllowOrigins
	}
	return cors.New(cfg)
}

// Handler 返回底层 http.Handler，便于测试
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，ctx 结束时优雅退出
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	v1.GET("/catalog", s.handleCatalog)
	v1.GET("/catalog/:name", s.handleCatalogItem)
	v1.GET("/tags", s.handleTags)
	v1.POST("/recommend/:scene", s.handleRecommend)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "items": s.catalog.Len()})
}
