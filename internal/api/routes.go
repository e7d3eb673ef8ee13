// Package api exposes the forensics engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/observability"
)

// DefaultMaxUploadBytes bounds scan and extract request bodies.
const DefaultMaxUploadBytes = 5 << 20

// Options configures the router.
type Options struct {
	Limiter        *RateLimiter // nil disables rate limiting
	Hub            *Hub         // nil disables the live stream
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// SetupRouter builds the gin engine with all routes.
func SetupRouter(svc Service, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	handler := &Handler{svc: svc, maxUploadBytes: maxUpload, logger: logger}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(observability.Handler()))

	api := r.Group("/api/v1")
	if opts.Hub != nil {
		api.GET("/stream", opts.Hub.Subscribe)
	}
	api.GET("/labels/:address", handler.handleLabel)
	api.GET("/analyses", handler.handleAnalyses)
	api.POST("/extract", handler.handleExtract)

	// Routes that reach the RPC provider
	upstream := api.Group("")
	if opts.Limiter != nil {
		upstream.Use(opts.Limiter.Middleware())
	}
	{
		upstream.POST("/trace", handler.handleTrace)
		upstream.POST("/report", handler.handleReport)
		upstream.POST("/scan", handler.handleScan)
		upstream.POST("/multihop", handler.handleMultiHop)
		upstream.GET("/tokens/:wallet", handler.handleTokens)
	}

	return r
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}
