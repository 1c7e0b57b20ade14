package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"boardgame-tracker/internal/badge"
	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/domain"
	"boardgame-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrBadgeNotFound is returned when no badge carries the requested ID.
var ErrBadgeNotFound = errors.New("badge not found")

// BadgeService loads the store snapshot and runs the badge engine over it.
// Computation is referentially transparent, so the result is cached and only
// recomputed after a write or once the recency window may have moved.
type BadgeService struct {
	games    *repository.GameRepository
	sessions *repository.SessionRepository
	engine   *badge.Engine
	logger   zerolog.Logger

	mu       sync.Mutex
	cached   *badge.Collections
	cachedAt time.Time
}

func NewBadgeService(games *repository.GameRepository, sessions *repository.SessionRepository, logger zerolog.Logger) *BadgeService {
	return &BadgeService{
		games:    games,
		sessions: sessions,
		engine:   badge.NewEngine(badge.DefaultConfig()),
		logger:   logger,
	}
}

// Collections returns the full badge collections for the current store state.
func (s *BadgeService) Collections(ctx context.Context) (*badge.Collections, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.cachedAt) < constants.BadgeCacheTTL {
		s.logger.Debug().Msg("returning cached badge collections")
		return s.cached, nil
	}

	games, sessions, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	collections := s.engine.Compute(badge.Context{Games: games, Sessions: sessions}, time.Now())
	s.logger.Info().
		Int("games", len(games)).
		Int("sessions", len(sessions)).
		Int("badges", len(collections.AllBadges)).
		Int("total_xp", collections.TotalXP).
		Dur("duration", time.Since(start)).
		Msg("badge collections computed")

	s.cached = &collections
	s.cachedAt = time.Now()
	return s.cached, nil
}

// Get looks up one badge by its stable ID.
func (s *BadgeService) Get(ctx context.Context, id string) (*badge.Badge, error) {
	collections, err := s.Collections(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := collections.AllBadges[id]
	if !ok {
		return nil, fmt.Errorf("badge %s: %w", id, ErrBadgeNotFound)
	}
	return &b, nil
}

// RecentCounts returns the per-party count of badges earned inside the
// recency window, used as the navigation "new badges" indicator.
func (s *BadgeService) RecentCounts(ctx context.Context) (badge.RecentCounts, error) {
	collections, err := s.Collections(ctx)
	if err != nil {
		return badge.RecentCounts{}, err
	}
	return collections.RecentCounts, nil
}

// Invalidate drops the cached collections. Called after any store write.
func (s *BadgeService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.logger.Debug().Msg("badge cache invalidated")
}

// loadSnapshot reads both tables concurrently.
func (s *BadgeService) loadSnapshot(ctx context.Context) ([]domain.Game, []domain.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(dbCtx)
	var games []domain.Game
	var sessions []domain.Session

	g.Go(func() error {
		var err error
		games, err = s.games.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessions.List(gCtx, repository.SessionFilter{})
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load snapshot")
		return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return games, sessions, nil
}
