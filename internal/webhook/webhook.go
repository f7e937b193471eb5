// Package webhook exposes an HTTP trigger endpoint so external tools
// (shortcuts, schedulers, CI) can kick off a posting cycle.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yuhaochen/lexipost/internal/app"
)

// Poster runs one posting cycle on demand.
type Poster interface {
	CreateAndPublish(ctx context.Context, req app.PostRequest) (*app.PostResult, error)
}

// Server is the webhook HTTP server.
type Server struct {
	poster Poster
	srv    *http.Server
	log    zerolog.Logger
}

// New creates a webhook server listening on the given port.
func New(poster Poster, port int, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		poster: poster,
		log:    log.With().Str("component", "webhook").Logger(),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", s.health)
	router.POST("/trigger", s.trigger)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}
	return s
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.srv.Addr).Msg("webhook server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) trigger(c *gin.Context) {
	var req app.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.log.Info().Str("word", req.Word).Str("level", req.Level).Msg("trigger received")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Minute)
	defer cancel()

	result, err := s.poster.CreateAndPublish(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("posting cycle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
