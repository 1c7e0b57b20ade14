package repository

import (
	"context"
	"database/sql"
	"fmt"

	"boardgame-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// BackupRepository replaces the whole store in one transaction during a
// restore. Reads go through the game and session repositories.
type BackupRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBackupRepository(sqlDB *sql.DB, logger zerolog.Logger) *BackupRepository {
	return &BackupRepository{db: sqlDB, logger: logger}
}

// ReplaceAll wipes both tables and inserts the given snapshot atomically.
func (r *BackupRepository) ReplaceAll(ctx context.Context, games []domain.Game, sessions []domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games`); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}

	for _, g := range games {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO games (id, name, image_url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.ImageURL, g.CreatedAt, g.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to restore game %s: %w", g.ID, err)
		}
	}
	for _, s := range sessions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, game_id, played_at, score_a, score_b, winner, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.GameID, s.PlayedAt, s.ScoreA, s.ScoreB, string(s.Winner), s.CreatedAt, s.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to restore session %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	r.logger.Info().
		Int("games", len(games)).
		Int("sessions", len(sessions)).
		Msg("store replaced from backup")
	return nil
}
