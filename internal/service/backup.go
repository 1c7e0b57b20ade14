package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"boardgame-tracker/internal/config"
	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/domain"
	"boardgame-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the backup document: the raw store, exported whole.
type Snapshot struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Games      []domain.Game    `json:"games"`
	Sessions   []domain.Session `json:"sessions"`
}

// BackupService exports and restores the full store as timestamped JSON
// documents under the configured backup directory.
type BackupService struct {
	games    *repository.GameRepository
	sessions *repository.SessionRepository
	backup   *repository.BackupRepository
	badges   *BadgeService
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewBackupService(
	games *repository.GameRepository,
	sessions *repository.SessionRepository,
	backup *repository.BackupRepository,
	badges *BadgeService,
	cfg *config.Config,
	logger zerolog.Logger,
) *BackupService {
	return &BackupService{
		games:    games,
		sessions: sessions,
		backup:   backup,
		badges:   badges,
		cfg:      cfg,
		logger:   logger,
	}
}

// Export writes the current store to a new backup file and returns its path.
func (s *BackupService) Export(ctx context.Context) (string, *Snapshot, error) {
	opCtx, cancel := context.WithTimeout(ctx, constants.BackupTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(opCtx)
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
		s.logger.Error().Err(err).Msg("failed to read store for backup")
		return "", nil, fmt.Errorf("failed to read store for backup: %w", err)
	}

	snapshot := &Snapshot{ExportedAt: time.Now(), Games: games, Sessions: sessions}

	if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup-%s.json", snapshot.ExportedAt.UTC().Format("20060102T150405Z"))
	path := filepath.Join(s.cfg.BackupDir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write backup: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("games", len(games)).
		Int("sessions", len(sessions)).
		Msg("backup exported")
	return path, snapshot, nil
}

// Restore replaces the whole store with a previously exported snapshot.
func (s *BackupService) Restore(ctx context.Context, snapshot *Snapshot) error {
	for _, session := range snapshot.Sessions {
		if session.ID == "" || session.PlayedAt.IsZero() || !session.Winner.Valid() {
			return fmt.Errorf("snapshot contains invalid session %q", session.ID)
		}
	}
	for _, game := range snapshot.Games {
		if game.ID == "" || game.Name == "" {
			return fmt.Errorf("snapshot contains invalid game %q", game.ID)
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, constants.BackupTimeout)
	defer cancel()

	if err := s.backup.ReplaceAll(opCtx, snapshot.Games, snapshot.Sessions); err != nil {
		s.logger.Error().Err(err).Msg("restore failed")
		return err
	}

	s.badges.Invalidate()
	s.logger.Info().
		Int("games", len(snapshot.Games)).
		Int("sessions", len(snapshot.Sessions)).
		Time("exported_at", snapshot.ExportedAt).
		Msg("store restored from snapshot")
	return nil
}
