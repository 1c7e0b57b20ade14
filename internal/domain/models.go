package domain

import (
	"time"
)

// Winner is the recorded outcome of a session. A tie is a valid outcome
// but is never attributed to a streak-owning party.
type Winner string

const (
	WinnerPlayerA Winner = "player_a"
	WinnerPlayerB Winner = "player_b"
	WinnerTie     Winner = "tie"
)

func (w Winner) Valid() bool {
	switch w {
	case WinnerPlayerA, WinnerPlayerB, WinnerTie:
		return true
	}
	return false
}

// Party is one of the two tracked players.
type Party string

const (
	PartyA Party = "player_a"
	PartyB Party = "player_b"
)

// Party returns the streak-owning party for a winner value.
// Ties own no streak, so ok is false.
func (w Winner) Party() (Party, bool) {
	switch w {
	case WinnerPlayerA:
		return PartyA, true
	case WinnerPlayerB:
		return PartyB, true
	}
	return "", false
}

type Game struct {
	ID        string
	Name      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Session struct {
	ID        string // nanoid
	GameID    string
	PlayedAt  time.Time
	ScoreA    int
	ScoreB    int
	Winner    Winner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Year returns the calendar year the session was played in.
func (s Session) Year() int {
	return s.PlayedAt.Year()
}
