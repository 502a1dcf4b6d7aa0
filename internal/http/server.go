// Package http serves the four views of the tracker (entry, orders,
// dashboard, history) as an htmx page over the tracker service, plus the
// backup export/restore endpoints.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"prancheta/internal/config"
	applog "prancheta/internal/log"
	"prancheta/internal/services"
	appweb "prancheta/web"
)

type Server struct {
	http.Server
	templates *template.Template
	tracker   *services.Tracker
	cfg       *config.Config
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, tracker *services.Tracker, cfg *config.Config) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		tracker: tracker,
		cfg:     cfg,
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", applog.FieldError, err)
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
		slog.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/orders", s.withMiddleware(s.handleCreateOrder))
	mux.HandleFunc("/orders/delete", s.withMiddleware(s.handleDeleteOrder))
	mux.HandleFunc("/status/cycle", s.withMiddleware(s.handleCycleStatus))
	mux.HandleFunc("/export", s.withMiddleware(s.handleExport))
	mux.HandleFunc("/restore", s.withMiddleware(s.handleRestore))

	// UI partials
	mux.HandleFunc("/ui/entry", s.withMiddleware(s.handleEntryForm))
	mux.HandleFunc("/ui/orders", s.withMiddleware(s.handleOrdersList))
	mux.HandleFunc("/ui/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("/ui/history", s.withMiddleware(s.handleHistory))

	return s
}

// withMiddleware adds security headers and request logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatus, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
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

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
