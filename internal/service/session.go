package service

import (
	"context"
	"fmt"
	"time"

	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/domain"
	"boardgame-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type SessionService struct {
	sessions *repository.SessionRepository
	badges   *BadgeService
	logger   zerolog.Logger
}

func NewSessionService(sessions *repository.SessionRepository, badges *BadgeService, logger zerolog.Logger) *SessionService {
	return &SessionService{sessions: sessions, badges: badges, logger: logger}
}

// SessionInput is the write payload. Validation happens here at the boundary
// so the badge engine never sees a malformed record.
type SessionInput struct {
	GameID   string
	PlayedAt time.Time
	ScoreA   int
	ScoreB   int
	Winner   domain.Winner
}

func (in SessionInput) validate() error {
	if in.GameID == "" {
		return fmt.Errorf("game id is required")
	}
	if in.PlayedAt.IsZero() {
		return fmt.Errorf("played_at is required")
	}
	if !in.Winner.Valid() {
		return fmt.Errorf("winner must be one of %q, %q, %q",
			domain.WinnerPlayerA, domain.WinnerPlayerB, domain.WinnerTie)
	}
	if in.ScoreA < 0 || in.ScoreB < 0 {
		return fmt.Errorf("scores must not be negative")
	}
	return nil
}

func (s *SessionService) Create(ctx context.Context, in SessionInput) (*domain.Session, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		GameID:    in.GameID,
		PlayedAt:  in.PlayedAt,
		ScoreA:    in.ScoreA,
		ScoreB:    in.ScoreB,
		Winner:    in.Winner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.sessions.Create(dbCtx, session); err != nil {
		return nil, err
	}

	s.badges.Invalidate()
	s.logger.Info().
		Str("session_id", session.ID).
		Str("game_id", session.GameID).
		Time("played_at", session.PlayedAt).
		Str("winner", string(session.Winner)).
		Msg("session recorded")
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.sessions.Get(dbCtx, id)
}

func (s *SessionService) List(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.sessions.List(dbCtx, filter)
}

func (s *SessionService) Update(ctx context.Context, id string, in SessionInput) (*domain.Session, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	session, err := s.sessions.Get(dbCtx, id)
	if err != nil {
		return nil, err
	}

	session.GameID = in.GameID
	session.PlayedAt = in.PlayedAt
	session.ScoreA = in.ScoreA
	session.ScoreB = in.ScoreB
	session.Winner = in.Winner
	session.UpdatedAt = time.Now()

	if err := s.sessions.Update(dbCtx, session); err != nil {
		return nil, err
	}

	s.badges.Invalidate()
	s.logger.Info().Str("session_id", session.ID).Msg("session updated")
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.sessions.Delete(dbCtx, id); err != nil {
		return err
	}

	s.badges.Invalidate()
	s.logger.Info().Str("session_id", id).Msg("session deleted")
	return nil
}
