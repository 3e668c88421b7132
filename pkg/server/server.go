// Package server exposes stabilizer chains over HTTP.
//
// Group definitions are persisted in a [store.Store]. Built systems are kept
// in a bounded LRU of live groups; an evicted system is released and rebuilt
// from its stored definition on the next request. Each live group is guarded
// by its own mutex, so requests against different groups run concurrently
// while requests against one group are serialized.
//
// Routes:
//
//	GET    /healthz
//	POST   /groups                       create from a definition
//	GET    /groups                       list stored groups
//	GET    /groups/{id}                  summary
//	DELETE /groups/{id}
//	POST   /groups/{id}/generators       {"generator": "(0 1)"}
//	POST   /groups/{id}/member           {"permutation": "(0 1)"}
//	GET    /groups/{id}/orbit/{point}
//	GET    /groups/{id}/chain
//	GET    /groups/{id}/render?format=svg
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/permgroup/pkg/group"
	"github.com/matzehuels/permgroup/pkg/pipeline"
	"github.com/matzehuels/permgroup/pkg/store"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address for ListenAndServe.
	Addr string `toml:"addr"`

	// MaxLive bounds the number of built systems kept in memory.
	MaxLive int `toml:"max_live"`

	// RequestTimeout bounds each request, including chain construction.
	RequestTimeout time.Duration `toml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// MaxDegree rejects larger groups at creation. A single generator
	// cannot be interrupted once its chain update starts, and the
	// transversals of a symmetric group of degree n hold about n³/3 points.
	MaxDegree int `toml:"max_degree"`

	// Build configures chain construction.
	Build pipeline.Options `toml:"-"`
}

// Defaults for zero Config fields.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultMaxLive         = 128
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxDegree       = 256
)

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxLive <= 0 {
		c.MaxLive = DefaultMaxLive
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.MaxDegree <= 0 {
		c.MaxDegree = DefaultMaxDegree
	}
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger

	loadMu sync.Mutex
	live   *lru.Cache
}

// liveGroup is a built system with the record it was built from. sys is nil
// once the entry has been evicted.
type liveGroup struct {
	mu  sync.Mutex
	rec *store.Record
	sys *group.System
}

// New returns a server using runner for builds and st for persistence.
func New(cfg Config, runner *pipeline.Runner, st store.Store, logger *log.Logger) (*Server, error) {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	live, err := lru.NewWithEvict(cfg.MaxLive, func(_, value interface{}) {
		g := value.(*liveGroup)
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.sys != nil {
			g.sys.Release()
			g.sys = nil
		}
	})
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		runner: runner,
		store:  st,
		logger: logger,
		live:   live,
	}, nil
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.NotFound(s.handleNotFound)
	r.Get("/healthz", s.handleHealth)
	r.Route("/groups", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/generators", s.handleAddGenerator)
			r.Post("/member", s.handleMember)
			r.Get("/orbit/{point}", s.handleOrbit)
			r.Get("/chain", s.handleChain)
			r.Get("/render", s.handleRender)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close releases every live system. The store and runner are owned by the
// caller.
func (s *Server) Close() {
	s.live.Purge()
}

// lookup returns the live group for id, building it from the store when it
// is not resident. The returned group is locked; the caller must unlock it.
func (s *Server) lookup(ctx context.Context, id string) (*liveGroup, error) {
	for {
		if v, ok := s.live.Get(id); ok {
			g := v.(*liveGroup)
			g.mu.Lock()
			if g.sys != nil {
				return g, nil
			}
			// Evicted between Get and Lock.
			g.mu.Unlock()
			s.live.Remove(id)
			continue
		}
		if err := s.load(ctx, id); err != nil {
			return nil, err
		}
	}
}

func (s *Server) load(ctx context.Context, id string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.live.Contains(id) {
		return nil
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	sys, err := s.runner.Build(ctx, &rec.Definition, s.cfg.Build)
	if err != nil {
		return err
	}
	s.live.Add(id, &liveGroup{rec: rec, sys: sys})
	s.logger.Debug("loaded group", "id", id)
	return nil
}
