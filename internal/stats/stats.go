// Package stats derives display statistics from the session history:
// play totals, win rates, approximate play time, play counts per game and
// cumulative win evolution. Like the badge engine it is pure over its input.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/domain"
)

type Summary struct {
	TotalPlays      int     `json:"totalPlays"`
	WinsA           int     `json:"winsA"`
	WinsB           int     `json:"winsB"`
	Ties            int     `json:"ties"`
	WinPctA         float64 `json:"winPctA"`
	WinPctB         float64 `json:"winPctB"`
	PlayTimeMinutes int     `json:"playTimeMinutes"`
	PlayTimeLabel   string  `json:"playTimeLabel"`
}

// Summarize aggregates one period's sessions. Play time is approximated at a
// fixed number of minutes per session.
func Summarize(sessions []domain.Session) Summary {
	s := Summary{TotalPlays: len(sessions)}

	for _, session := range sessions {
		switch session.Winner {
		case domain.WinnerPlayerA:
			s.WinsA++
		case domain.WinnerPlayerB:
			s.WinsB++
		case domain.WinnerTie:
			s.Ties++
		}
	}

	s.WinPctA = winPercentage(s.WinsA, s.TotalPlays)
	s.WinPctB = winPercentage(s.WinsB, s.TotalPlays)
	s.PlayTimeMinutes = s.TotalPlays * constants.MinutesPerSession
	s.PlayTimeLabel = HumanizeMinutes(s.PlayTimeMinutes)

	return s
}

func winPercentage(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Variation is the change of one metric against a previous period.
type Variation struct {
	Delta float64 `json:"delta"`
	Trend Trend   `json:"trend"`
}

// variationOf reports the change between two values; a zero delta yields no
// variation, matching how the summary cards omit the indicator.
func variationOf(current, previous float64) (Variation, bool) {
	delta := current - previous
	if delta == 0 {
		return Variation{}, false
	}
	trend := TrendUp
	if delta < 0 {
		trend = TrendDown
	}
	return Variation{Delta: delta, Trend: trend}, true
}

// Comparison carries the per-metric variations of a period summary against
// the preceding period. Nil fields mean "no change to show".
type Comparison struct {
	WinPctA  *Variation `json:"winPctA,omitempty"`
	WinPctB  *Variation `json:"winPctB,omitempty"`
	PlayTime *Variation `json:"playTime,omitempty"`
}

// Compare builds the variation set of current against previous. A previous
// period with no plays produces no comparison at all.
func Compare(current, previous Summary) *Comparison {
	if previous.TotalPlays == 0 {
		return nil
	}

	cmp := &Comparison{}
	if v, ok := variationOf(current.WinPctA, previous.WinPctA); ok {
		cmp.WinPctA = &v
	}
	if v, ok := variationOf(current.WinPctB, previous.WinPctB); ok {
		cmp.WinPctB = &v
	}
	if v, ok := variationOf(float64(current.PlayTimeMinutes), float64(previous.PlayTimeMinutes)); ok {
		cmp.PlayTime = &v
	}
	return cmp
}

// HumanizeMinutes renders a minute total as "2d 3h 20m" style parts.
func HumanizeMinutes(totalMinutes int) string {
	minutes := totalMinutes
	if minutes < 0 {
		minutes = -minutes
	}
	if minutes == 0 {
		return "0 min"
	}

	hours := minutes / 60
	minutes %= 60
	days := hours / 24
	hours %= 24

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

// PlayCount is one game's total session count.
type PlayCount struct {
	GameID string `json:"gameId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// PlayCounts counts sessions per game, sorted by count descending, then by
// name for a stable order. Only games with at least one session appear.
func PlayCounts(games []domain.Game, sessions []domain.Session) []PlayCount {
	names := map[string]string{}
	for _, g := range games {
		names[g.ID] = g.Name
	}

	counts := map[string]int{}
	for _, s := range sessions {
		counts[s.GameID]++
	}

	out := make([]PlayCount, 0, len(counts))
	for id, count := range counts {
		name, ok := names[id]
		if !ok {
			name = "Unknown game"
		}
		out = append(out, PlayCount{GameID: id, Name: name, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CountRange is the min/max across a play count list, used to scale podium bars.
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func RangeOf(counts []PlayCount) CountRange {
	if len(counts) == 0 {
		return CountRange{}
	}
	r := CountRange{Min: counts[0].Count, Max: counts[0].Count}
	for _, c := range counts[1:] {
		if c.Count < r.Min {
			r.Min = c.Count
		}
		if c.Count > r.Max {
			r.Max = c.Count
		}
	}
	return r
}

// EvolutionPoint is one month's cumulative win totals.
type EvolutionPoint struct {
	Month    time.Month `json:"month"`
	CumWinsA int        `json:"cumWinsA"`
	CumWinsB int        `json:"cumWinsB"`
}

// WinEvolution builds the cumulative win series for one calendar year, one
// point per month from January through December.
func WinEvolution(sessions []domain.Session, year int) []EvolutionPoint {
	var winsA, winsB [13]int
	for _, s := range sessions {
		if s.Year() != year {
			continue
		}
		m := s.PlayedAt.Month()
		switch s.Winner {
		case domain.WinnerPlayerA:
			winsA[m]++
		case domain.WinnerPlayerB:
			winsB[m]++
		}
	}

	points := make([]EvolutionPoint, 0, 12)
	cumA, cumB := 0, 0
	for m := time.January; m <= time.December; m++ {
		cumA += winsA[m]
		cumB += winsB[m]
		points = append(points, EvolutionPoint{Month: m, CumWinsA: cumA, CumWinsB: cumB})
	}
	return points
}

// FilterYear keeps the sessions played in one calendar year.
func FilterYear(sessions []domain.Session, year int) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if s.Year() == year {
			out = append(out, s)
		}
	}
	return out
}

// FilterMonth keeps the sessions played in one calendar month of a year.
func FilterMonth(sessions []domain.Session, year int, month time.Month) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if s.Year() == year && s.PlayedAt.Month() == month {
			out = append(out, s)
		}
	}
	return out
}
