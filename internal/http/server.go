// Package http exposes the application over HTMX-driven endpoints: full
// page render at /, fragment endpoints under /ui/, and mutation
// endpoints that run workflows and respond with the refreshed app
// fragment plus notification triggers.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Musyoka2020-eng/Contriflow/internal/access"
	"github.com/Musyoka2020-eng/Contriflow/internal/cache"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	"github.com/Musyoka2020-eng/Contriflow/internal/workflow"
	appweb "github.com/Musyoka2020-eng/Contriflow/web"
)

type Server struct {
	http.Server
	controller  *workflow.Controller
	roles       access.Provider
	templates   *template.Template
	rateLimiter *rateLimiter
	logger      *log.Logger

	// Exported reports are cached keyed by filters and document version,
	// so repeated downloads of an unchanged dataset cost one generation.
	reportCache *cache.LRU[[]byte]

	stopCacheCleanup chan struct{}
}

// NewServer wires routes and templates, returning a ready-to-run server.
func NewServer(addr string, controller *workflow.Controller, roles access.Provider, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		controller:       controller,
		roles:            roles,
		rateLimiter:      newRateLimiter(),
		logger:           logger.WithComponent(log.ComponentHTTP),
		reportCache:      cache.NewLRU[[]byte](50, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}
	go s.startCacheCleanup()

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Error("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Error("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /ui/app", s.withMiddleware(s.handleApp))
	mux.HandleFunc("POST /ui/view", s.withMiddleware(s.handleSelectView))
	mux.HandleFunc("POST /ui/period", s.withMiddleware(s.handleChangePeriod))

	mux.HandleFunc("POST /months", s.withMiddleware(s.handleRequestCreateMonth))
	mux.HandleFunc("POST /months/clone", s.withMiddleware(s.handleRequestCloneMonth))
	mux.HandleFunc("POST /months/merge-members", s.withMiddleware(s.handleMergeNewMembers))
	mux.HandleFunc("POST /workflows/confirm", s.withMiddleware(s.handleConfirm))

	mux.HandleFunc("POST /contributions", s.withMiddleware(s.handleAddContribution))
	mux.HandleFunc("POST /contributions/{index}", s.withMiddleware(s.handleUpdateContribution))
	mux.HandleFunc("POST /contributions/{index}/toggle", s.withMiddleware(s.handleTogglePaid))
	mux.HandleFunc("DELETE /contributions/{index}", s.withMiddleware(s.handleRemoveContribution))

	mux.HandleFunc("POST /blacklist", s.withMiddleware(s.handleBlacklistAdd))
	mux.HandleFunc("DELETE /blacklist/{member}", s.withMiddleware(s.handleBlacklistRemove))

	mux.HandleFunc("POST /campaigns", s.withMiddleware(s.handleUpsertCampaign))
	mux.HandleFunc("POST /campaigns/{id}/gift", s.withMiddleware(s.handleCampaignGift))
	mux.HandleFunc("DELETE /campaigns/{id}", s.withMiddleware(s.handleDeleteCampaign))

	mux.HandleFunc("GET /ui/report", s.withMiddleware(s.handleReport))
	mux.HandleFunc("GET /reports/export", s.withMiddleware(s.handleReportExport))

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.PurgeExpired(); cleaned > 0 {
				s.logger.Debug("Report cache cleanup", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stopCacheCleanup)
	s.rateLimiter.stop()
	return s.Server.Shutdown(ctx)
}

// withMiddleware adds security headers, rate limiting on mutations,
// request IDs and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
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
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

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

type requestIDKey struct{}

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

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
