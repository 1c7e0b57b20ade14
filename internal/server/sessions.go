package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"boardgame-tracker/internal/domain"
	"boardgame-tracker/internal/repository"
	"boardgame-tracker/internal/service"

	"github.com/go-chi/chi/v5"
)

type sessionRequest struct {
	GameID   string `json:"gameId"`
	PlayedAt string `json:"playedAt"`
	ScoreA   int    `json:"scoreA"`
	ScoreB   int    `json:"scoreB"`
	Winner   string `json:"winner"`
}

func (req sessionRequest) toInput() (service.SessionInput, error) {
	playedAt, err := time.Parse(time.RFC3339, req.PlayedAt)
	if err != nil {
		return service.SessionInput{}, err
	}
	return service.SessionInput{
		GameID:   req.GameID,
		PlayedAt: playedAt,
		ScoreA:   req.ScoreA,
		ScoreB:   req.ScoreB,
		Winner:   domain.Winner(req.Winner),
	}, nil
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	filter := repository.SessionFilter{
		GameID: r.URL.Query().Get("game"),
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		filter.Year = year
	}

	sessions, err := s.sessionSvc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "playedAt must be RFC 3339")
		return
	}

	session, err := s.sessionSvc.Create(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(*session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessionSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(*session))
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "playedAt must be RFC 3339")
		return
	}

	session, err := s.sessionSvc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(*session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
