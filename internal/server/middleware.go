package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bakery_recommend/internal/logger"
	"bakery_recommend/internal/metrics"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "requestId"
)

// requestID 沿用调用方传入的请求 ID，否则生成新的 UUID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// accessLog 每个请求输出一条结构化日志，并记录耗时指标
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveHTTP(c.Request.Method, route, status, latency)

		l := logger.Logger()
		event := l.Info()
		if status >= 500 {
			event = l.Error()
		}
		event.
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Float64("duration_ms", float64(latency.Microseconds())/1000.0).
			Str("client_ip", c.ClientIP()).
			Msg("request.complete")
	}
}
