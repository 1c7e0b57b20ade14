package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"boardgame-tracker/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

type gameResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toGameResponse(g domain.Game) gameResponse {
	return gameResponse{
		ID:        g.ID,
		Name:      g.Name,
		ImageURL:  g.ImageURL,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

type sessionResponse struct {
	ID        string `json:"id"`
	GameID    string `json:"gameId"`
	PlayedAt  string `json:"playedAt"`
	ScoreA    int    `json:"scoreA"`
	ScoreB    int    `json:"scoreB"`
	Winner    string `json:"winner"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		GameID:    s.GameID,
		PlayedAt:  s.PlayedAt.Format(time.RFC3339),
		ScoreA:    s.ScoreA,
		ScoreB:    s.ScoreB,
		Winner:    string(s.Winner),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}
