package server

import (
	"encoding/json"
	"net/http"

	"boardgame-tracker/internal/service"
)

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	path, snapshot, err := s.backupSvc.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"path":     path,
		"games":    len(snapshot.Games),
		"sessions": len(snapshot.Sessions),
	})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	var snapshot service.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot body")
		return
	}

	if err := s.backupSvc.Restore(r.Context(), &snapshot); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"games":    len(snapshot.Games),
		"sessions": len(snapshot.Sessions),
	})
}
