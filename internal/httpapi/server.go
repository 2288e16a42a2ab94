package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coverfinder/internal/logging"
	"coverfinder/internal/metrics"
	"coverfinder/internal/services"
)

const requestIDHeader = "X-Request-ID"

const shutdownTimeout = 5 * time.Second

// NewRouter builds the gin engine with health, request logging and the
// handler's routes under /api. A non-nil m adds request metrics and /metrics.
func NewRouter(h *Handler, logger *slog.Logger, m *metrics.Metrics) *gin.Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logging.NewComponentLogger(logger, "httpapi"), m))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"active_sessions": h.Sessions.Active(),
		})
	})
	h.RegisterRoutes(router.Group("/api"))
	return router
}

// requestLogger tags each request context with a request id, then logs and
// counts the outcome once the handler returns.
func requestLogger(logger *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		if id := c.GetHeader(requestIDHeader); id != "" {
			ctx = services.WithRequestID(ctx, id)
		}
		ctx = services.EnsureRequestID(ctx)
		c.Request = c.Request.WithContext(ctx)
		if id, ok := services.RequestIDFromContext(ctx); ok {
			c.Header(requestIDHeader, id)
		}

		c.Next()

		elapsed := time.Since(start)
		m.ObserveRequest(c.FullPath(), c.Writer.Status(), elapsed)
		logging.WithContext(ctx, logger).Info("request served",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("elapsed", elapsed),
		)
	}
}

// Server runs the router on a TCP listener until its context ends.
type Server struct {
	bind   string
	logger *slog.Logger
	server *http.Server
}

func NewServer(bind string, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "httpapi"),
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ListenAndServe listens on the configured bind address and serves until ctx
// is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api serve: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}
