// Package server exposes the leaderboard service over HTTP. It wires a gin
// engine with CORS, request IDs, structured request logging, panic recovery,
// global rate limiting and Prometheus metrics around the JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/leaderboard"
)

// Server is the HTTP front of a leaderboard.Service.
type Server struct {
	cfg       config.ServerConfig
	svc       *leaderboard.Service
	logger    *log.Logger
	engine    *gin.Engine
	limiter   *windowLimiter
	nudgeGate *intervalLimiter
	startedAt time.Time
}

// New builds a Server with all middleware and routes registered.
func New(svc *leaderboard.Service, cfg config.ServerConfig, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:       cfg,
		svc:       svc,
		logger:    logger,
		limiter:   newWindowLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second),
		nudgeGate: newIntervalLimiter(time.Duration(cfg.RateLimit.NudgeIntervalSeconds) * time.Second),
		startedAt: time.Now(),
	}

	engine := gin.New()
	engine.Use(s.recovery())
	engine.Use(requestID())
	engine.Use(cors())
	if cfg.LogRequests {
		engine.Use(s.logRequests())
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api", s.rateLimit())
	api.GET("/health", s.handleHealth)
	api.GET("/active-users", s.handleActiveUsers)
	api.POST("/update-active-users", s.handleNudgeActiveUsers)
	api.POST("/submit-score", s.handleSubmitScore)
	api.GET("/leaderboard", s.handleLeaderboard)
	api.POST("/check-username", s.handleCheckUsername)
	api.POST("/update-username", s.handleUpdateUsername)
	api.POST("/airdrop", s.handleAirdrop)

	s.engine = engine
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic recovered", "id", c.GetString("request_id"), "err", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			metricRateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}
		c.Next()
		metricRequests.WithLabelValues(c.Request.URL.Path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
