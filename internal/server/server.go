// Package server wires the gin engine, middleware stack and route table,
// and runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snapseek/api/internal/api"
	"github.com/snapseek/api/internal/auth"
	"github.com/snapseek/api/internal/config"
	"github.com/snapseek/api/internal/health"
	"github.com/snapseek/api/internal/history"
	"github.com/snapseek/api/internal/metrics"
	"github.com/snapseek/api/internal/search"
	"github.com/snapseek/api/internal/session"
	"github.com/snapseek/api/internal/unsplash"
	"gorm.io/gorm"
)

// Server is the HTTP server with its wired dependencies.
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *slog.Logger
}

// New builds the router and middleware stack.
func New(cfg *config.Config, db *gorm.DB, sessions session.Store, upstream *unsplash.Client, log *slog.Logger) (*Server, error) {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	cookies, err := session.NewCookies(cfg.SessionSecret, cfg.Production())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session cookies: %w", err)
	}

	auth.InitProviders(cfg)

	authHandlers := auth.NewHandlers(db, sessions, cookies, cfg, log)
	searchHandlers := search.NewHandlers(db, upstream, log)
	historyHandlers := history.NewHandlers(db, log)
	searchLimiter := search.NewRateLimiter()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", health.Handler(cfg))

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.GET("/status", authHandlers.Status)
			authGroup.POST("/logout", authHandlers.Logout)
			authGroup.GET("/:provider", authHandlers.Begin)
			authGroup.GET("/:provider/callback", authHandlers.Callback)
		}

		apiGroup.POST("/search",
			authHandlers.RequireAuth(),
			searchLimiter.Middleware(),
			search.ValidateTerm(),
			searchHandlers.Search,
		)
		apiGroup.GET("/top-searches", searchHandlers.TopSearches)

		apiGroup.GET("/history", authHandlers.RequireAuth(), historyHandlers.Get)
		apiGroup.DELETE("/history", authHandlers.RequireAuth(), historyHandlers.Clear)
	}

	router.GET("/metrics", metrics.Handler())

	router.NoRoute(func(c *gin.Context) {
		api.NotFound(c, "Route not found",
			fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
	})

	return &Server{
		router: router,
		log:    log,
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
	}, nil
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until SIGINT/SIGTERM, then drains connections for up to 10s.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// requestLogger logs each request with a generated request id.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Info("request",
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
