// Package badge derives achievement badges from the recorded session history.
// The engine is a pure function of its input snapshot plus an explicit clock:
// it performs no I/O and holds no state, so it is safe to call from any
// number of goroutines.
package badge

import (
	"boardgame-tracker/internal/domain"
)

// Type discriminates the three badge families.
type Type string

const (
	TypeStreak     Type = "streak"
	TypeGameStreak Type = "game-streak"
	TypeMilestone  Type = "milestone"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityFor classifies a badge by its XP value.
func RarityFor(xp int) Rarity {
	switch {
	case xp >= 1500:
		return RarityLegendary
	case xp >= 800:
		return RarityEpic
	case xp >= 400:
		return RarityRare
	}
	return RarityCommon
}

// StreakOccurrence records the span of the qualifying run behind a streak badge.
type StreakOccurrence struct {
	ID         string `json:"id"`
	StartLabel string `json:"startLabel"`
	StartISO   string `json:"startISO"`
	EndLabel   string `json:"endLabel"`
	EndISO     string `json:"endISO"`
	Length     int    `json:"length"`
}

// GameRef decorates a game-scoped badge. For sessions referencing a game that
// is missing from the snapshot it carries a placeholder name and no image.
type GameRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Badge is one party's achievement of one tier in one scope and year.
// Its ID is stable across recomputation; only the earned dates may move
// forward when re-derivation finds a more recent qualifying occurrence.
type Badge struct {
	ID             string             `json:"id"`
	Year           int                `json:"year"`
	Party          domain.Party       `json:"party"`
	Type           Type               `json:"type"`
	Title          string             `json:"title"`
	Subtitle       string             `json:"subtitle"`
	TierLabel      string             `json:"tierLabel"`
	Description    string             `json:"description"`
	Gradient       string             `json:"gradient"`
	AccentColor    string             `json:"accentColor"`
	TextColor      string             `json:"textColor"`
	Game           *GameRef           `json:"game,omitempty"`
	EarnedLabels   []string           `json:"earnedLabels"`
	EarnedAt       []string           `json:"earnedDateISO"`
	Streaks        []StreakOccurrence `json:"streaks,omitempty"`
	MilestoneCount int                `json:"milestoneCount,omitempty"`
	XP             int                `json:"xpValue"`
	Rarity         Rarity             `json:"rarity"`

	// key is the structured form of ID, kept for collision-free dedup.
	key Key
}

// YearBadges groups one year's badges by owning party.
type YearBadges struct {
	PlayerA []Badge `json:"playerA"`
	PlayerB []Badge `json:"playerB"`
}

type RecentCounts struct {
	PlayerA int `json:"playerA"`
	PlayerB int `json:"playerB"`
}

// Collections is the full computation result. It is rebuilt from scratch on
// every Compute call and owned solely by its caller.
type Collections struct {
	YearsUsed    []int              `json:"yearsUsed"`
	ByYear       map[int]YearBadges `json:"byYear"`
	AllBadges    map[string]Badge   `json:"allBadges"`
	RecentCounts RecentCounts       `json:"recentCounts"`
	TotalXP      int                `json:"totalXp"`
}

// Context is the input snapshot. Years may arrive unsorted or empty; an empty
// list means "every year with at least one session".
type Context struct {
	Games    []domain.Game
	Sessions []domain.Session
	Years    []int
}
