// Package web exposes the task store as a local JSON API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskboard/internal/store"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	store        *store.Store
	logger       zerolog.Logger
	router       *gin.Engine
	recentLimit  int
	previewLimit int
}

type Option func(*Server)

func WithLimits(recent, preview int) Option {
	return func(s *Server) {
		if recent > 0 {
			s.recentLimit = recent
		}
		if preview > 0 {
			s.previewLimit = preview
		}
	}
}

func NewServer(s *store.Store, logger zerolog.Logger, opts ...Option) *Server {
	router := gin.New()
	srv := &Server{
		store:        s,
		logger:       logger.With().Str("component", "web").Logger(),
		router:       router,
		recentLimit:  store.DefaultRecentLimit,
		previewLimit: store.DefaultPreviewLimit,
	}
	for _, opt := range opts {
		opt(srv)
	}

	router.Use(srv.requestLogger, gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/tasks", srv.handleList)
		api.POST("/tasks", srv.handleCreate)
		api.GET("/tasks/:id", srv.handleGet)
		api.PUT("/tasks/:id", srv.handleUpdate)
		api.DELETE("/tasks/:id", srv.handleDelete)
		api.GET("/search", srv.handleSearch)
		api.GET("/summary", srv.handleSummary)
		api.GET("/categories", srv.handleCategories)
	}
	return srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("failed to shutdown http server")
		return err
	}
	return nil
}

func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug().
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}
