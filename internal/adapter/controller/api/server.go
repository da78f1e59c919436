// Package api exposes the research use case as a JSON HTTP host.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YoshitsuguKoike/potionlab/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/input"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
)

// ShutdownTimeout bounds graceful shutdown after the context ends
const ShutdownTimeout = 5 * time.Second

// Options configures a Server
type Options struct {
	Catalog  *catalog.Catalog
	Palette  *presenter.Palette
	Logger   app.Logger
	Registry *prometheus.Registry
	Version  string
}

// Server routes HTTP requests to the research use case
type Server struct {
	uc       input.ResearchUseCase
	catalog  *catalog.Catalog
	palette  *presenter.Palette
	logger   app.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	version  string
	router   *gin.Engine
}

// NewServer builds the router. Catalog is required.
func NewServer(uc input.ResearchUseCase, opts Options) (*Server, error) {
	if uc == nil {
		return nil, errors.New("research use case is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	s := &Server{
		uc:       uc,
		catalog:  opts.Catalog,
		palette:  opts.Palette,
		logger:   opts.Logger,
		registry: opts.Registry,
		version:  opts.Version,
	}
	if s.palette == nil {
		s.palette = presenter.NewPalette(opts.Catalog.Domain())
	}
	if s.logger == nil {
		s.logger = app.GetLogger()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	s.metrics.candidates.Set(float64(uc.Stats().Candidates))

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(s.logger), s.metrics.middleware())
	s.routes(router)
	s.router = router
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http host listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http host failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http host shutdown: %w", err)
	}
	s.logger.Info("http host stopped")
	return <-errCh
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		// Session state
		v1.GET("/state", s.handleStats)
		v1.GET("/catalog", s.handleCatalog)

		// Trial log
		v1.GET("/trials", s.handleListTrials)
		v1.POST("/trials", s.handleCommit)
		v1.DELETE("/trials/:id", s.handleRemove)
		v1.POST("/trials/:id/resolve", s.handleResolve)

		// Queries
		v1.GET("/candidates", s.handleCandidates)
		v1.GET("/recommendations", s.handleRecommend)
		v1.GET("/options/:dimension", s.handleOptions)
		v1.GET("/matrix/:organ", s.handleMatrix)
		v1.GET("/untested", s.handleUntested)
		v1.GET("/seasons", s.handleSeasons)

		// Backup
		v1.GET("/export", s.handleExport)
		v1.POST("/import", s.handleImport)
	}
}
