package repository

import (
	"context"
	"database/sql"
	"fmt"

	"boardgame-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type GameRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, logger zerolog.Logger) *GameRepository {
	return &GameRepository{db: sqlDB, logger: logger}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) error {
	if game.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		game.ID = id
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO games (id, name, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		game.ID, game.Name, game.ImageURL, game.CreatedAt, game.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("game_id", game.ID).Msg("failed to insert game")
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *GameRepository) Get(ctx context.Context, id string) (*domain.Game, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM games WHERE id = ?`, id)

	var g domain.Game
	if err := row.Scan(&g.ID, &g.Name, &g.ImageURL, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepository) List(ctx context.Context) ([]domain.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM games ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list games")
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.ImageURL, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET name = ?, image_url = ?, updated_at = ? WHERE id = ?`,
		game.Name, game.ImageURL, game.UpdatedAt, game.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("game_id", game.ID).Msg("failed to update game")
		return fmt.Errorf("failed to update game: %w", err)
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

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("game_id", id).Msg("failed to delete game")
		return fmt.Errorf("failed to delete game: %w", err)
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
