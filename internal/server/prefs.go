package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"Stratowave/internal/prefs"

	"github.com/go-chi/chi/v5"
)

type prefRequest struct {
	Value string `json:"value"`
}

type prefResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// prefKey extracts and validates the key URL parameter
func prefKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "key")
	if err := prefs.ValidateKey(key); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid preference key")
		return "", false
	}
	return key, true
}

func (s *Server) handleGetPref(w http.ResponseWriter, r *http.Request) {
	key, ok := prefKey(w, r)
	if !ok {
		return
	}

	value, found, err := s.store.Get(r.Context(), key)
	if err != nil {
		s.logger.Error("failed to load preference", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load preference")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Preference not found")
		return
	}
	writeJSON(w, http.StatusOK, prefResponse{Key: key, Value: value})
}

// handleSetPref stores an uploaded image and invalidates rendered pages
func (s *Server) handleSetPref(w http.ResponseWriter, r *http.Request) {
	key, ok := prefKey(w, r)
	if !ok {
		return
	}

	var req prefRequest
	body := http.MaxBytesReader(w, r.Body, prefs.MaxImageSize+1024)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, prefs.InvalidImageMessage)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := prefs.ValidateImage(req.Value); err != nil {
		writeError(w, http.StatusBadRequest, prefs.InvalidImageMessage)
		return
	}

	if err := s.store.Set(r.Context(), key, req.Value); err != nil {
		s.logger.Error("failed to save preference", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save preference")
		return
	}
	s.pages.Invalidate()
	s.logger.Info("preference updated", "key", key, "bytes", len(req.Value))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemovePref(w http.ResponseWriter, r *http.Request) {
	key, ok := prefKey(w, r)
	if !ok {
		return
	}

	if err := s.store.Remove(r.Context(), key); err != nil {
		s.logger.Error("failed to remove preference", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not remove preference")
		return
	}
	s.pages.Invalidate()
	s.logger.Info("preference removed", "key", key)
	w.WriteHeader(http.StatusNoContent)
}
