// Package http serves the dashboard's JSON API: linked accounts, the
// raw transaction window, and the detected recurring contracts.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"finora/internal/cache"
	"finora/internal/core"
	"finora/internal/log"
	"finora/internal/sources"
	"finora/internal/storage"
)

// SyncPublisher enqueues an account sync request for the worker.
type SyncPublisher interface {
	PublishAccountSync(ctx context.Context, userID int64) error
}

// Deps carries the collaborators a Server needs. Publisher may be nil
// when AMQP is not configured; sync requests then return 503.
type Deps struct {
	Storage    *storage.SQLiteRepository
	Txns       sources.TransactionSource
	Accounts   sources.AccountSource
	Publisher  SyncPublisher
	WindowDays int
	Logger     *log.Logger
}

type Server struct {
	http.Server
	storage    *storage.SQLiteRepository
	txns       sources.TransactionSource
	accounts   sources.AccountSource
	publisher  SyncPublisher
	windowDays int
	logger     *log.Logger

	rateLimiter *rateLimiter

	// Per-user contract lists are cached between detection runs.
	contractsCache *cache.LRU[[]core.Contract]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		storage:        deps.Storage,
		txns:           deps.Txns,
		accounts:       deps.Accounts,
		publisher:      deps.Publisher,
		windowDays:     deps.WindowDays,
		logger:         logger.WithComponent(log.ComponentHTTP),
		rateLimiter:    newRateLimiter(),
		contractsCache: cache.NewLRU[[]core.Contract](500, 5*time.Minute),
		cacheManager:   cache.NewManager(),
	}
	if s.windowDays <= 0 {
		s.windowDays = 90
	}

	s.cacheManager.Register(s.contractsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/accounts", s.withRequest(s.handleAccounts))
	mux.HandleFunc("/api/transactions", s.withRequest(s.handleTransactions))
	mux.HandleFunc("/api/contracts", s.withRequest(s.handleContracts))
	mux.HandleFunc("/api/token", s.withRequest(s.handleSaveToken))
	mux.HandleFunc("/api/sync", s.withRequest(s.handleSync))

	return s
}

// Shutdown stops the background cleanup loops and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.StopCleanup()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRequest adds security headers, rate limiting, request ids, and
// request logging around an API handler.
func (s *Server) withRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), log.LoggerContextKey,
			s.logger.With(log.FieldRequestID, requestID))
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		// Mutating requests are rate limited per client.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
