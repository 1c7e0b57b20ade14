// Package server exposes the tracker over a JSON HTTP API.
package server

import (
	"net/http"

	"boardgame-tracker/internal/config"
	"boardgame-tracker/internal/middleware"
	"boardgame-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	gameSvc    *service.GameService
	sessionSvc *service.SessionService
	badgeSvc   *service.BadgeService
	statsSvc   *service.StatsService
	backupSvc  *service.BackupService
	cfg        *config.Config
	logger     zerolog.Logger
}

func NewServer(
	gameSvc *service.GameService,
	sessionSvc *service.SessionService,
	badgeSvc *service.BadgeService,
	statsSvc *service.StatsService,
	backupSvc *service.BackupService,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {
	return &Server{
		gameSvc:    gameSvc,
		sessionSvc: sessionSvc,
		badgeSvc:   badgeSvc,
		statsSvc:   statsSvc,
		backupSvc:  backupSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(s.logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handlePlayers)

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleListGames)
			r.Post("/", s.handleCreateGame)
			r.Get("/{id}", s.handleGetGame)
			r.Put("/{id}", s.handleUpdateGame)
			r.Delete("/{id}", s.handleDeleteGame)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Put("/{id}", s.handleUpdateSession)
			r.Delete("/{id}", s.handleDeleteSession)
		})

		r.Route("/badges", func(r chi.Router) {
			r.Get("/", s.handleBadgeCollections)
			r.Get("/recent", s.handleRecentBadges)
			r.Get("/{id}", s.handleGetBadge)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/summary", s.handleStatsSummary)
			r.Get("/plays", s.handlePlayCounts)
			r.Get("/evolution", s.handleEvolution)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(s.cfg.AdminToken, s.logger))
			r.Post("/backup", s.handleBackup)
			r.Post("/restore", s.handleRestore)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
