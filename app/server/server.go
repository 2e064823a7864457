// Package server provides HTTP server for the province population map.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/thaimap/app/provinces"
	"github.com/umputun/thaimap/app/server/audit"
	"github.com/umputun/thaimap/app/server/auth"
	"github.com/umputun/thaimap/app/server/web"
	"github.com/umputun/thaimap/app/store"
)

// Server represents the HTTP server.
type Server struct {
	Deps
	Config
	webHandler   *web.Handler
	auditHandler *audit.Handler
	staticFS     fs.FS // embedded static files
}

// Config holds server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Version         string
	BaseURL         string // base URL path for reverse proxy (e.g., /thaimap)
	Debug           bool   // log every request

	BodySizeLimit    int64   // max request body size in bytes
	RequestsPerSec   float64 // max requests per second (rate limit)
	MaxConcurrent    int64   // max concurrent in-flight requests
	LoginConcurrency int64   // max concurrent login attempts

	AuditEnabled    bool // enable audit logging
	AuditQueryLimit int  // max entries per audit query (default 1000)
}

// Deps holds server dependencies.
type Deps struct {
	Auth       *auth.Service    // credential validator
	Gate       *auth.Gate       // session marker issue/read/revoke and route interception
	Atlas      *provinces.Atlas // province collection shown on the map
	AuditStore *store.Store     // optional, nil to disable audit logging
}

// New creates a new Server instance.
func New(deps Deps, cfg Config) (*Server, error) {
	if deps.Auth == nil || deps.Gate == nil || deps.Atlas == nil {
		return nil, errors.New("auth, gate and atlas are required")
	}

	staticContent, err := web.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}

	s := &Server{Deps: deps, Config: cfg, staticFS: staticContent}

	webHandler, err := web.New(web.Deps{Auth: deps.Auth, Gate: deps.Gate, Atlas: deps.Atlas}, web.Config{
		BaseURL:      cfg.BaseURL,
		AuditEnabled: s.auditEnabled(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}
	s.webHandler = webHandler

	if s.auditEnabled() {
		s.auditHandler = audit.NewHandler(deps.AuditStore, cfg.AuditQueryLimit)
	}

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Address,
		Handler:           s.handler(),
		ReadHeaderTimeout: s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
	}

	// graceful shutdown
	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	log.Printf("[DEBUG] started server on %s", s.Address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler returns the HTTP handler, wrapping routes with base URL support if configured.
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.BaseURL == "" {
		return routes
	}
	mux := http.NewServeMux()
	// redirect /base to /base/
	mux.HandleFunc(s.BaseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.BaseURL+"/", http.StatusMovedPermanently)
	})
	// strip prefix for all routes under base URL
	mux.Handle(s.BaseURL+"/", http.StripPrefix(s.BaseURL, routes))
	return mux
}

// routes configures and returns the HTTP handler with all routes and middleware.
// The session gate is global, so every path is classified before any content is produced.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware (applies to all routes)
	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP, // must be before rate limiting to limit by real client IP
		s.rateLimiter(),
		rest.Throttle(s.maxConcurrent()),
		rest.Trace,
		s.requestLogger(),
		rest.SizeLimit(s.bodySizeLimit()),
		rest.AppInfo("thaimap", "umputun", s.Version),
		rest.Ping,
		s.Gate.Middleware,
	)

	// unrestricted static assets
	router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(s.staticFS))))

	// login submission and logout are audited, submission gets a stricter throttle against brute-force
	s.webHandler.RegisterLogin(router, s.auditMiddleware(), rest.Throttle(s.loginConcurrency()))
	s.webHandler.RegisterLogout(router, s.auditMiddleware())

	// pages and province data, access decided by the gate
	s.webHandler.Register(router)

	if s.auditHandler != nil {
		router.HandleFunc("GET /map/audit", s.auditHandler.HandleQuery)
	}

	return router
}

// auditEnabled reports whether audit logging is configured and has a store.
func (s *Server) auditEnabled() bool {
	return s.AuditEnabled && s.AuditStore != nil
}

// auditMiddleware returns the audit middleware or noop if audit is disabled.
func (s *Server) auditMiddleware() func(http.Handler) http.Handler {
	if !s.auditEnabled() {
		return audit.NoopMiddleware
	}
	return audit.Middleware(s.AuditStore)
}

// requestLogger returns request logging middleware in debug mode, noop otherwise.
func (s *Server) requestLogger() func(http.Handler) http.Handler {
	if !s.Debug {
		return noopMiddleware
	}
	return logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]"), logger.IPfn(logger.AnonymizeIP)).Handler
}

// bodySizeLimit returns the configured body size limit, or default 64KB if not set.
func (s *Server) bodySizeLimit() int64 {
	if s.BodySizeLimit > 0 {
		return s.BodySizeLimit
	}
	return 64 * 1024
}

// requestsPerSec returns the configured rate limit (requests per second), or default 100 if not set.
func (s *Server) requestsPerSec() float64 {
	if s.RequestsPerSec > 0 {
		return s.RequestsPerSec
	}
	return 100
}

// maxConcurrent returns the configured max concurrent in-flight requests, or default 1000 if not set.
func (s *Server) maxConcurrent() int64 {
	if s.MaxConcurrent > 0 {
		return s.MaxConcurrent
	}
	return 1000
}

// loginConcurrency returns the configured login concurrency limit, or default 5 if not set.
func (s *Server) loginConcurrency() int64 {
	if s.LoginConcurrency > 0 {
		return s.LoginConcurrency
	}
	return 5
}

// shutdownTimeout returns the configured shutdown timeout, or default 10s if not set.
func (s *Server) shutdownTimeout() time.Duration {
	if s.ShutdownTimeout > 0 {
		return s.ShutdownTimeout
	}
	return 10 * time.Second
}

// rateLimiter returns middleware that limits requests per second using tollbooth.
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(s.requestsPerSec(), &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0}) // use RemoteAddr (RealIP middleware sets it)
	lmt.SetBurst(int(s.requestsPerSec()))                                    // burst equals rate limit
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

// noopMiddleware is a pass-through middleware.
func noopMiddleware(next http.Handler) http.Handler {
	return next
}
