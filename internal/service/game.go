package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"boardgame-tracker/internal/api"
	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/domain"
	"boardgame-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type GameService struct {
	games  *repository.GameRepository
	images *api.ImageClient
	badges *BadgeService
	logger zerolog.Logger
}

func NewGameService(games *repository.GameRepository, images *api.ImageClient, badges *BadgeService, logger zerolog.Logger) *GameService {
	return &GameService{games: games, images: images, badges: badges, logger: logger}
}

func (s *GameService) Create(ctx context.Context, name, imageURL string) (*domain.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("game name is required")
	}

	imgCtx, cancel := context.WithTimeout(ctx, constants.ImageTimeout)
	defer cancel()
	if err := s.images.Validate(imgCtx, imageURL); err != nil {
		s.logger.Warn().Err(err).Str("image_url", imageURL).Msg("cover image rejected")
		return nil, fmt.Errorf("invalid cover image: %w", err)
	}

	now := time.Now()
	game := &domain.Game{
		Name:      name,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.games.Create(dbCtx, game); err != nil {
		return nil, err
	}

	s.badges.Invalidate()
	s.logger.Info().Str("game_id", game.ID).Str("name", game.Name).Msg("game created")
	return game, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.games.Get(dbCtx, id)
}

func (s *GameService) List(ctx context.Context) ([]domain.Game, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.games.List(dbCtx)
}

func (s *GameService) Update(ctx context.Context, id, name, imageURL string) (*domain.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("game name is required")
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	game, err := s.games.Get(dbCtx, id)
	if err != nil {
		return nil, err
	}

	if imageURL != game.ImageURL {
		imgCtx, cancel := context.WithTimeout(ctx, constants.ImageTimeout)
		defer cancel()
		if err := s.images.Validate(imgCtx, imageURL); err != nil {
			s.logger.Warn().Err(err).Str("image_url", imageURL).Msg("cover image rejected")
			return nil, fmt.Errorf("invalid cover image: %w", err)
		}
	}

	game.Name = name
	game.ImageURL = imageURL
	game.UpdatedAt = time.Now()

	if err := s.games.Update(dbCtx, game); err != nil {
		return nil, err
	}

	s.badges.Invalidate()
	s.logger.Info().Str("game_id", game.ID).Msg("game updated")
	return game, nil
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.games.Delete(dbCtx, id); err != nil {
		return err
	}

	s.badges.Invalidate()
	s.logger.Info().Str("game_id", id).Msg("game deleted")
	return nil
}
