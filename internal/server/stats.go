package server

import (
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := q.Get("period")

	var year int
	var month time.Month
	if raw := q.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = v
	}
	if raw := q.Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(v)
	}

	switch period {
	case "year", "month":
		if year == 0 {
			writeError(w, http.StatusBadRequest, "year is required")
			return
		}
	}
	if period == "month" && month == 0 {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}

	summary, err := s.statsSvc.Summary(r.Context(), period, year, month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePlayCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.statsSvc.PlayCounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleEvolution(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	points, err := s.statsSvc.Evolution(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
