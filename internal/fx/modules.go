package fx

import (
	"boardgame-tracker/internal/api"
	"boardgame-tracker/internal/config"
	"boardgame-tracker/internal/database"
	"boardgame-tracker/internal/logger"
	"boardgame-tracker/internal/repository"
	"boardgame-tracker/internal/server"
	"boardgame-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewGameRepository),
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(repository.NewBackupRepository),
	// api client
	fx.Provide(api.NewImageClient),
	// svc
	fx.Provide(service.NewBadgeService),
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewSessionService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewBackupService),
	// server
	fx.Provide(server.NewServer),
)
