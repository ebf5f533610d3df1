// Package server exposes the site and the chat widget backend over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"Stratowave/internal/cache"
	"Stratowave/internal/chatbot"
	"Stratowave/internal/prefs"
	"Stratowave/internal/site"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP layer in front of the widget registry, page renderer
// and preference store.
type Server struct {
	registry *chatbot.Registry
	renderer *site.Renderer
	store    prefs.Store
	pages    *cache.Pages
	logger   *slog.Logger
	router   chi.Router
}

// New creates a server and registers all routes
func New(registry *chatbot.Registry, renderer *site.Renderer, store prefs.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		registry: registry,
		renderer: renderer,
		store:    store,
		pages:    cache.New(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Stratowave OK"))
	})

	s.RegisterRoutes(r)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRoutes attaches the site, widget and preference endpoints
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(site.Static()))))

	r.Route("/api/widgets", func(r chi.Router) {
		r.Post("/", s.handleCreateWidget)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWidget)
			r.Delete("/", s.handleReleaseWidget)
			r.Post("/keepalive", s.handleKeepAlive)
			r.Post("/open", s.handleOpenWidget)
			r.Post("/close", s.handleCloseWidget)
			r.Put("/draft", s.handleSetDraft)
			r.Post("/turns", s.handleSubmitTurn)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	r.Route("/api/prefs/{key}", func(r chi.Router) {
		r.Get("/", s.handleGetPref)
		r.Put("/", s.handleSetPref)
		r.Delete("/", s.handleRemovePref)
	})

	r.Get("/", s.handlePage)
	r.Get("/{page}", s.handlePage)
}

// requestLogger logs one line per request with slog
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// writeJSON is a helper for sending json responses
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for sending a standardized json error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
