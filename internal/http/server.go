// Package http serves the upload form, runs extraction on submitted
// workbooks and answers time-window queries against the latest snapshot.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"doanhso/internal/cache"
	"doanhso/internal/core"
	"doanhso/internal/extract"
	"doanhso/internal/grid"
	applog "doanhso/internal/log"
	appweb "doanhso/web"
)

// Options configures a Server.
type Options struct {
	Addr           string
	Labels         core.Labels
	MaxUploadBytes int64
	// Source is set when the grid comes from a configured sheet instead
	// of uploads; nil means upload-only mode.
	Source grid.Source
	Logger *applog.Logger
}

type Server struct {
	http.Server
	logger    *applog.Logger
	templates *template.Template

	labels    core.Labels
	maxUpload int64
	source    grid.Source
	extractor *extract.Extractor

	// Latest successful extraction; replaced atomically, last write wins.
	state snapshotState

	rateLimiter *rateLimiter

	// Window totals keyed by generation+date+window. Generations bump on
	// every new snapshot, so stale entries simply age out.
	totalsCache *cache.LRUCache[float64]
	cacheMgr    *cache.Manager

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	httpLogger := logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr: opts.Addr,
			// Attach the logger to every request context so deeper code can
			// pick it up with applog.FromContext.
			Handler: applog.Middleware(httpLogger)(mux),
		},
		logger:      httpLogger,
		labels:      opts.Labels,
		maxUpload:   opts.MaxUploadBytes,
		source:      opts.Source,
		extractor:   extract.New(opts.Labels),
		rateLimiter: newRateLimiter(),
		totalsCache: cache.NewLRUCache[float64](200, 5*time.Minute),
		cacheMgr:    cache.NewManager(),
		started:     time.Now(),
	}

	s.cacheMgr.Register(s.totalsCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"vnd": formatGrouped,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/upload", s.withSecurityHeaders(s.handleUpload))
	mux.HandleFunc("/query", s.withSecurityHeaders(s.handleQuery))
	mux.HandleFunc("/refresh", s.withSecurityHeaders(s.handleRefresh))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		if !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")

		next(w, r)

		s.logger.InfoContext(r.Context(), "Request handled",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// Simple in-memory rate limiter: up to 60 requests per client per minute.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes.
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
