package server

import (
	"net/http"

	"Stratowave/internal/cache"
	"Stratowave/internal/site"

	"github.com/go-chi/chi/v5"
)

// handlePage renders a site page. Unknown page IDs render Home.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := site.Lookup(chi.URLParam(r, "page"))

	cached, hit, err := s.pages.LoadOrRender(string(page), func() ([]byte, error) {
		return s.renderer.Render(r.Context(), page)
	})
	if err != nil {
		s.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", cached.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if cache.Matches(r.Header.Get("If-None-Match"), cached.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached.Body)
}
