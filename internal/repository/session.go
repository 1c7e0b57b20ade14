package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"boardgame-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SessionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSessionRepository(sqlDB *sql.DB, logger zerolog.Logger) *SessionRepository {
	return &SessionRepository{db: sqlDB, logger: logger}
}

// SessionFilter narrows List. Zero values mean "no filter".
type SessionFilter struct {
	Year   int
	GameID string
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		session.ID = id
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, game_id, played_at, score_a, score_b, winner, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.GameID, session.PlayedAt,
		session.ScoreA, session.ScoreB, string(session.Winner),
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", session.ID).Msg("failed to insert session")
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, game_id, played_at, score_a, score_b, winner, created_at, updated_at
		 FROM sessions WHERE id = ?`, id)

	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) List(ctx context.Context, filter SessionFilter) ([]domain.Session, error) {
	query := `SELECT id, game_id, played_at, score_a, score_b, winner, created_at, updated_at
	 FROM sessions`
	var args []any
	var where []string

	if filter.Year != 0 {
		where = append(where, `played_at >= ? AND played_at < ?`)
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		args = append(args, start, start.AddDate(1, 0, 0))
	}
	if filter.GameID != "" {
		where = append(where, `game_id = ?`)
		args = append(args, filter.GameID)
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY played_at, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list sessions")
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.Session) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET game_id = ?, played_at = ?, score_a = ?, score_b = ?, winner = ?, updated_at = ?
		 WHERE id = ?`,
		session.GameID, session.PlayedAt, session.ScoreA, session.ScoreB,
		string(session.Winner), session.UpdatedAt, session.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", session.ID).Msg("failed to update session")
		return fmt.Errorf("failed to update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", id).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var winner string
	if err := row.Scan(&s.ID, &s.GameID, &s.PlayedAt, &s.ScoreA, &s.ScoreB,
		&winner, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Winner = domain.Winner(winner)
	return &s, nil
}
