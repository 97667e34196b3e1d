// Package server exposes company analysis and dataset queries over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"company-analyzer/internal/interfaces"
	"company-analyzer/internal/logger"
	"company-analyzer/internal/store"
)

// Deps are the services the HTTP layer delegates to.
type Deps struct {
	Analyzer interfaces.CompanyAnalyzer
	Repo     interfaces.CompanyRepository
	Cache    interfaces.CacheController
	Index    interfaces.CompanyIndex
}

// Server is the HTTP API server.
type Server struct {
	cfg    *store.Config
	deps   Deps
	router chi.Router
}

// New creates a server with all routes and middleware mounted.
func New(cfg *store.Config, deps Deps) *Server {
	s := &Server{cfg: cfg, deps: deps}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.cfg.Server.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Company data and analysis
		r.Get("/company", s.handleDatabase)
		r.Get("/company/{name}", s.handleCompany)

		// Search
		r.Get("/search", s.handleSearch)
		r.Get("/suggest", s.handleSuggest)

		// Dataset browsing
		r.Get("/industries", s.handleIndustries)
		r.Get("/industries/{industry}", s.handleIndustryCompanies)
		r.Get("/markets", s.handleMarkets)
		r.Get("/markets/{market}", s.handleMarketCompanies)
		r.Get("/metadata", s.handleMetadata)

		// Cache control
		r.Get("/cache", s.handleCacheStatus)
		r.Delete("/cache", s.handleCacheClear)
	})

	return r
}
