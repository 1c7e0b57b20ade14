package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type gameRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.gameSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := s.gameSvc.Create(r.Context(), req.Name, req.ImageURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toGameResponse(*game))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.gameSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameResponse(*game))
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := s.gameSvc.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.ImageURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameResponse(*game))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.gameSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
