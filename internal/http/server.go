package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frontikai/stewardapp/internal/cache"
	applog "github.com/frontikai/stewardapp/internal/log"
	"github.com/frontikai/stewardapp/internal/report"
	"github.com/frontikai/stewardapp/internal/services"
	"github.com/frontikai/stewardapp/internal/storage"
)

// Server exposes the giving records and report API over JSON.
type Server struct {
	http.Server
	store  *storage.SQLiteRepository
	giving *services.GivingService

	// reportCache holds assembled view models per window; any record
	// mutation purges it.
	reportCache *cache.LRUCache[report.ReportViewModel]

	rateLimiter      *rateLimiter
	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, store *storage.SQLiteRepository, giving *services.GivingService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		giving:           giving,
		reportCache:      cache.NewLRUCache[report.ReportViewModel](50, time.Minute),
		rateLimiter:      newRateLimiter(),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/api/report", s.withRequestLogging(s.handleReport))
	mux.HandleFunc("/api/donations", s.withRequestLogging(s.handleDonations))
	mux.HandleFunc("/api/donations/export", s.withRequestLogging(s.handleExportDonations))
	mux.HandleFunc("/api/income", s.withRequestLogging(s.handleIncome))
	mux.HandleFunc("/api/income/pending-tithe", s.withRequestLogging(s.handlePendingTithe))
	mux.HandleFunc("/api/income/", s.withRequestLogging(s.handleProcessIncome))
	mux.HandleFunc("/api/recipients", s.withRequestLogging(s.handleRecipients))
	mux.HandleFunc("/api/recipients/", s.withRequestLogging(s.handleUpdateRecipient))
	mux.HandleFunc("/api/settings", s.withRequestLogging(s.handleSettings))

	return s
}

// Shutdown stops the server and the cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Report cache cleanup", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// withRequestLogging adds a request ID, request logging, rate limiting on
// writes, and baseline response headers.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		ctx = context.WithValue(ctx, requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldComponent, applog.ComponentHTTP,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestTimeout bounds handler work per request, including SQLite queries.
const requestTimeout = 15 * time.Second

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
