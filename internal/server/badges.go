package server

import (
	"errors"
	"net/http"

	"boardgame-tracker/internal/domain"
	"boardgame-tracker/internal/service"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleBadgeCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.badgeSvc.Collections(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
}

func (s *Server) handleGetBadge(w http.ResponseWriter, r *http.Request) {
	b, err := s.badgeSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			writeError(w, http.StatusNotFound, "badge not found")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handlePlayers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		string(domain.PartyA): s.cfg.PlayerName(string(domain.PartyA)),
		string(domain.PartyB): s.cfg.PlayerName(string(domain.PartyB)),
	})
}

func (s *Server) handleRecentBadges(w http.ResponseWriter, r *http.Request) {
	counts, err := s.badgeSvc.RecentCounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
