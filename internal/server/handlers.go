package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dkaplan/chartlist/internal/catalog"
	"github.com/dkaplan/chartlist/internal/chart"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleHealth reports liveness and database connectivity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "ok"
		}
	}
	writeJSON(w, code, status)
}

// handleChart serves GET /api/chart/{genre}.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	rawGenre := r.PathValue("genre")

	resp, err := s.charts.Chart(r.Context(), rawGenre)
	if err != nil {
		var notFound *chart.NotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "chart not found, try another genre",
				"genre": rawGenre,
			})
			return
		}
		log.Printf("[SERVER] chart request failed for %q: %v", rawGenre, err)
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGenres serves GET /api/genres.
func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	genres := s.genres.Genres(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// CreatePlaylistRequest is the POST /api/playlist body.
type CreatePlaylistRequest struct {
	Genre       string `json:"genre" validate:"required,min=1"`
	Name        string `json:"name" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

// handleCreatePlaylist resolves the genre chart, then builds a playlist
// from it. Partial track-add failures still return success with warnings.
func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		req.Name = "Top " + req.Genre + " Albums"
	}

	chartResp, err := s.charts.Chart(r.Context(), req.Genre)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.playlists.Build(r.Context(), req.Name, req.Description, chartResp.Data)
	if err != nil {
		if errors.Is(err, catalog.ErrReauthRequired) {
			writeError(w, http.StatusUnauthorized, "catalog authentication expired, please re-authenticate")
			return
		}
		log.Printf("[SERVER] playlist build failed for %q: %v", req.Genre, err)
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
