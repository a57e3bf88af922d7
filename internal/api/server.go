// Package api exposes the HTTP surface: the OAuth handoff, the Drive
// webhook, and the public read endpoints for the rendering frontend.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driving"
	"github.com/blogoto/blogoto/internal/logger"
	"github.com/blogoto/blogoto/internal/metrics"
)

// drainTimeout bounds a webhook-triggered drain. Drive retries
// undelivered notifications, so an aborted drain is retried later.
const drainTimeout = 5 * time.Minute

// Server is the HTTP API server.
type Server struct {
	router       *gin.Engine
	orchestrator driving.SyncOrchestrator
	posts        driving.PostReader
	metrics      *metrics.Metrics
	httpServer   *http.Server
}

// NewServer creates the API server and wires up all routes.
func NewServer(orchestrator driving.SyncOrchestrator, posts driving.PostReader, m *metrics.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:       gin.New(),
		orchestrator: orchestrator,
		posts:        posts,
		metrics:      m,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.setupRoutes()
	return s
}

// Router returns the gin router for testing purposes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(c.FullPath(), c.Request.Method, http.StatusText(status))
		}
		logger.Debug("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/auth", s.handleAuth)
	s.router.GET("/oauth2callback", s.handleOAuthCallback)
	s.router.POST("/webhook", s.handleWebhook)

	s.router.GET("/api/posts", s.handleListPosts)
	s.router.GET("/api/posts/:slug", s.handleGetPost)

	s.router.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// handleAuth redirects the author to the Google consent screen.
func (s *Server) handleAuth(c *gin.Context) {
	state := uuid.New().String()
	c.Redirect(http.StatusFound, s.orchestrator.AuthURL(state))
}

// handleOAuthCallback finishes the OAuth handoff: it exchanges the
// authorisation code, then seeds the cursor and watch channel so
// publishing starts without further action.
func (s *Server) handleOAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorisation code"})
		return
	}

	ctx := c.Request.Context()
	if err := s.orchestrator.Authorise(ctx, code); err != nil {
		logger.Error("authorisation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authorisation failed"})
		return
	}

	if err := s.orchestrator.EstablishWatch(ctx); err != nil {
		logger.Error("establishing watch after authorisation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "watch setup failed"})
		return
	}

	c.String(http.StatusOK, "Authorisation successful. Documents in the watched folder will now be published.")
}

// handleWebhook acknowledges the Drive notification immediately and
// drains changes in the background. Drive only needs the 200; the
// notification body carries no change data.
func (s *Server) handleWebhook(c *gin.Context) {
	if s.metrics != nil {
		s.metrics.WebhookDelivery()
	}

	state := c.GetHeader("X-Goog-Resource-State")
	channel := c.GetHeader("X-Goog-Channel-ID")
	logger.Debug("webhook notification: state=%s channel=%s", state, channel)

	c.Status(http.StatusOK)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()

		if err := s.orchestrator.Drain(ctx); err != nil {
			logger.Error("draining changes: %v", err)
		}
	}()
}

// handleListPosts returns summaries of all published posts.
func (s *Server) handleListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, s.posts.List(c.Request.Context()))
}

// handleGetPost returns a single post by slug.
func (s *Server) handleGetPost(c *gin.Context) {
	post, err := s.posts.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logger.Error("fetching post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start begins listening on the given address. Blocks until the
// server stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting for in-flight
// requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
