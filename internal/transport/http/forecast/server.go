package forecast

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"StockForecaster/internal/logger"
)

// HTTPServer serves the forecast API, health and metrics endpoints.
type HTTPServer struct {
	addr   string
	router *gin.Engine
}

// HTTPConfig configures NewHTTPServer.
type HTTPConfig struct {
	Addr string
	Svc  Service
	Data SnapshotSource
}

func NewHTTPServer(cfg HTTPConfig) (*HTTPServer, error) {
	if cfg.Svc == nil || cfg.Data == nil {
		return nil, errors.New("service and data source are required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	NewRouter(cfg.Svc, cfg.Data).Register(router.Group("/api/v1"))

	return &HTTPServer{addr: cfg.Addr, router: router}, nil
}

// Handler exposes the router for tests and embedding.
func (s *HTTPServer) Handler() http.Handler { return s.router }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
