package service

import (
	"context"
	"fmt"
	"time"

	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/repository"
	"boardgame-tracker/internal/stats"

	"github.com/rs/zerolog"
)

type StatsService struct {
	games    *repository.GameRepository
	sessions *repository.SessionRepository
	logger   zerolog.Logger
}

func NewStatsService(games *repository.GameRepository, sessions *repository.SessionRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{games: games, sessions: sessions, logger: logger}
}

// PeriodSummary is a summary plus its optional comparison against the
// preceding period (previous year, or previous month).
type PeriodSummary struct {
	Summary    stats.Summary     `json:"summary"`
	Comparison *stats.Comparison `json:"comparison,omitempty"`
}

// Summary aggregates the requested period. period is "overall", "year" or
// "month"; year/month are ignored where the period does not need them.
func (s *StatsService) Summary(ctx context.Context, period string, year int, month time.Month) (*PeriodSummary, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	sessions, err := s.sessions.List(dbCtx, repository.SessionFilter{})
	if err != nil {
		return nil, err
	}

	switch period {
	case "", "overall":
		return &PeriodSummary{Summary: stats.Summarize(sessions)}, nil

	case "year":
		current := stats.Summarize(stats.FilterYear(sessions, year))
		previous := stats.Summarize(stats.FilterYear(sessions, year-1))
		return &PeriodSummary{Summary: current, Comparison: stats.Compare(current, previous)}, nil

	case "month":
		current := stats.Summarize(stats.FilterMonth(sessions, year, month))
		prevYear, prevMonth := year, month-1
		if month == time.January {
			prevYear, prevMonth = year-1, time.December
		}
		previous := stats.Summarize(stats.FilterMonth(sessions, prevYear, prevMonth))
		return &PeriodSummary{Summary: current, Comparison: stats.Compare(current, previous)}, nil
	}

	return nil, fmt.Errorf("unknown period %q", period)
}

// PlayCountsResult carries the ranked play counts and their min/max range.
type PlayCountsResult struct {
	Counts []stats.PlayCount `json:"counts"`
	Range  stats.CountRange  `json:"range"`
}

func (s *StatsService) PlayCounts(ctx context.Context) (*PlayCountsResult, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.games.List(dbCtx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.List(dbCtx, repository.SessionFilter{})
	if err != nil {
		return nil, err
	}

	counts := stats.PlayCounts(games, sessions)
	if len(counts) > constants.TopPlayCountLimit {
		counts = counts[:constants.TopPlayCountLimit]
	}
	return &PlayCountsResult{Counts: counts, Range: stats.RangeOf(counts)}, nil
}

func (s *StatsService) Evolution(ctx context.Context, year int) ([]stats.EvolutionPoint, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	sessions, err := s.sessions.List(dbCtx, repository.SessionFilter{Year: year})
	if err != nil {
		return nil, err
	}
	return stats.WinEvolution(sessions, year), nil
}
