// Package server hosts generated forms over HTTP and accepts their
// submissions. Submissions live in memory only.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/page"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/runtime"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const (
	// AssetsPath is where the runtime scripts are served from.
	AssetsPath = "/assets"

	shutdownTimeout = 5 * time.Second
)

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request and reload logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrchestrator sets the pipeline used to (re)load the catalog.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.orch = orch
		}
	}
}

// WithSource points the server at a schema document. Format optionally
// forces the adapter.
func WithSource(src schema.Source, format string) Option {
	return func(s *Server) {
		s.source = src
		s.format = format
	}
}

// WithCatalog serves a pre-built catalog. Reload becomes a no-op unless a
// source is configured as well.
func WithCatalog(catalog *schema.Catalog) Option {
	return func(s *Server) {
		s.catalog = catalog
	}
}

// WithRenderOptions sets the per-form options. URI is always replaced by
// the record's submission route.
func WithRenderOptions(options render.RenderOptions) Option {
	return func(s *Server) {
		s.renderOptions = options
	}
}

// WithFormRenderer sets the renderer used for fragments and pages.
func WithFormRenderer(form *vanilla.Renderer) Option {
	return func(s *Server) {
		if form != nil {
			s.form = form
		}
	}
}

// WithPageRenderer sets the full page renderer.
func WithPageRenderer(p *page.Renderer) Option {
	return func(s *Server) {
		if p != nil {
			s.page = p
		}
	}
}

// WithStore replaces the submission store.
func WithStore(store *Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// Server serves the forms of one schema document.
type Server struct {
	logger        *zap.Logger
	orch          *orchestrator.Orchestrator
	source        schema.Source
	format        string
	renderOptions render.RenderOptions
	form          *vanilla.Renderer
	page          *page.Renderer
	store         *Store
	builder       model.Builder

	mu      sync.RWMutex
	catalog *schema.Catalog
}

// New constructs a Server. Call Reload before serving when a source is set.
func New(options ...Option) (*Server, error) {
	s := &Server{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.source == nil && s.catalog == nil {
		return nil, errors.New("server: a schema source or catalog is required")
	}
	if s.orch == nil {
		s.orch = orchestrator.New(orchestrator.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = NewStore()
	}
	if s.form == nil {
		form, err := vanilla.New(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: form renderer: %w", err)
		}
		s.form = form
	}
	if s.page == nil {
		p, err := page.New(
			page.WithFormRenderer(s.form),
			page.WithAssetURLPrefix(AssetsPath),
			page.WithLogger(s.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("server: page renderer: %w", err)
		}
		s.page = p
	}
	s.builder = model.NewBuilder(model.WithLogger(s.logger))
	return s, nil
}

// Reload rebuilds the catalog from the configured source. The previous
// catalog keeps serving when the new one fails to load.
func (s *Server) Reload(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	catalog, err := s.orch.Catalog(ctx, orchestrator.Request{Source: s.source, Format: s.format})
	if err != nil {
		return fmt.Errorf("server: reload %s: %w", s.source.Location(), err)
	}

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()

	s.logger.Info("catalog loaded",
		zap.String("source", s.source.Location()),
		zap.Strings("records", catalog.SortedNames()),
	)
	return nil
}

// Catalog returns the catalog currently served.
func (s *Server) Catalog() *schema.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Store exposes the submission store.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/forms/{record}", func(r chi.Router) {
		r.Get("/", s.handlePage)
		r.Post("/", s.handleSubmit)
		r.Get("/fragment", s.handleFragment)
		r.Get("/submissions", s.handleSubmissions)
	})
	r.Handle(AssetsPath+"/*", http.StripPrefix(AssetsPath+"/", http.FileServerFS(runtime.AssetsFS())))
	return r
}

// Run serves on addr until ctx is cancelled. When watch is set, edits to a
// file source reload the catalog.
func (s *Server) Run(ctx context.Context, addr string, watch bool, debounce time.Duration) error {
	if err := s.Reload(ctx); err != nil {
		return err
	}

	if watch {
		w, err := newReloadWatcher(s.source, debounce, s.Reload, s.logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}
