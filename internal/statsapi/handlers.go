package statsapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lox/pokerhub/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.HealthCheck(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.store.Players(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if players == nil {
		players = []storage.PlayerSummary{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rep, err := s.store.PlayerStats(r.Context(), name)
	if errors.Is(err, storage.ErrPlayerNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handlePlayerHands(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rows, err := s.store.PlayerRecentHands(r.Context(), name, queryLimit(r, 20))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rows == nil {
		rows = []storage.PlayerHandRow{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"player": name, "hands": rows})
}

func (s *Server) handleRecentHands(w http.ResponseWriter, r *http.Request) {
	hands, err := s.store.RecentHands(r.Context(), queryLimit(r, 50))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if hands == nil {
		hands = []storage.HandSummary{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hands": hands})
}

func (s *Server) handleGetHand(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetHand(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrHandNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.Files(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if files == nil {
		files = []storage.FileRecord{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 1000 {
		return def
	}
	return n
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
