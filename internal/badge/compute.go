package badge

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"boardgame-tracker/internal/constants"
	"boardgame-tracker/internal/domain"
)

// Engine computes badge collections from a session snapshot. It carries only
// the tier configuration and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives the full badge collections for a snapshot. The clock is an
// explicit parameter: it only influences the recent counts, so two calls with
// the same snapshot and the same instant return identical results.
func (e *Engine) Compute(ctx Context, now time.Time) Collections {
	out := Collections{
		ByYear:    map[int]YearBadges{},
		AllBadges: map[string]Badge{},
	}

	years := yearsFrom(ctx)
	out.YearsUsed = years

	scopes := gameScopes(ctx)
	recentCutoff := now.Add(-constants.RecentBadgeWindow)

	for i, year := range years {
		playerA, playerB := e.computeYear(year, scopes, ctx, i*7)

		out.ByYear[year] = YearBadges{PlayerA: playerA, PlayerB: playerB}

		for _, b := range playerA {
			out.AllBadges[b.ID] = b
			out.TotalXP += b.XP
		}
		for _, b := range playerB {
			out.AllBadges[b.ID] = b
			out.TotalXP += b.XP
		}

		out.RecentCounts.PlayerA += countRecent(playerA, recentCutoff)
		out.RecentCounts.PlayerB += countRecent(playerB, recentCutoff)
	}

	return out
}

// computeYear derives and deduplicates one year's badges for both parties.
func (e *Engine) computeYear(year int, scopes []domain.Game, ctx Context, paletteOffset int) (playerA, playerB []Badge) {
	yearSessions := sessionsInYear(ctx.Sessions, year)
	segments := Segments(yearSessions)

	for i, segment := range segments {
		if b, ok := e.streakBadge(segment, year, paletteOffset+i); ok {
			if segment.Party == domain.PartyA {
				playerA = append(playerA, b)
			} else {
				playerB = append(playerB, b)
			}
		}
	}

	for gi, game := range scopes {
		base := paletteOffset + len(segments) + gi

		playerA = append(playerA, e.gameStreakBadges(domain.PartyA, game, yearSessions, year, base)...)
		playerB = append(playerB, e.gameStreakBadges(domain.PartyB, game, yearSessions, year, base+1)...)

		for _, b := range e.milestoneBadges(domain.PartyA, game, ctx.Sessions, base+2) {
			if b.Year == year {
				playerA = append(playerA, b)
			}
		}
		for _, b := range e.milestoneBadges(domain.PartyB, game, ctx.Sessions, base+3) {
			if b.Year == year {
				playerB = append(playerB, b)
			}
		}
	}

	return mergeLatest(filterEarnedIn(playerA, year)), mergeLatest(filterEarnedIn(playerB, year))
}

// streakBadge maps one global segment to its highest qualifying streak tier.
func (e *Engine) streakBadge(segment Segment, year, paletteIndex int) (Badge, bool) {
	length := segment.Length()
	highest, ok := HighestTier(length, e.cfg.StreakThresholds())
	if !ok {
		return Badge{}, false
	}

	occ := occurrenceFor(segment)
	xp := e.cfg.XPFor(TypeStreak, highest)
	key := Key{Party: segment.Party, Year: year, Type: TypeStreak, Discriminator: strconv.Itoa(highest)}

	subtitle := fmt.Sprintf("%d wins in a row", highest)
	if length != highest {
		subtitle = fmt.Sprintf("%d wins in a row (highest tier %d)", length, highest)
	}

	return Badge{
		ID:           key.String(),
		key:          key,
		Year:         year,
		Party:        segment.Party,
		Type:         TypeStreak,
		Title:        fmt.Sprintf("%d game streak", highest),
		Subtitle:     subtitle,
		TierLabel:    fmt.Sprintf("%dx Combo", highest),
		Description:  "Chained victories without defeat, showcasing unwavering momentum.",
		Gradient:     Gradient(paletteIndex),
		AccentColor:  Accent(paletteIndex),
		TextColor:    "#0b0b0f",
		EarnedLabels: []string{occ.EndLabel},
		EarnedAt:     []string{occ.EndISO},
		Streaks:      []StreakOccurrence{occ},
		XP:           xp,
		Rarity:       RarityFor(xp),
	}, true
}

// gameStreakBadges re-segments the year's sessions of one game and maps each
// of the party's runs to its highest qualifying per-game tier.
func (e *Engine) gameStreakBadges(party domain.Party, game domain.Game, yearSessions []domain.Session, year, paletteIndex int) []Badge {
	var gameSessions []domain.Session
	for _, s := range yearSessions {
		if s.GameID == game.ID {
			gameSessions = append(gameSessions, s)
		}
	}

	thresholds := e.cfg.GameStreakThresholds()
	var badges []Badge

	for _, segment := range Segments(gameSessions) {
		if segment.Party != party {
			continue
		}
		highest, ok := HighestTier(segment.Length(), thresholds)
		if !ok {
			continue
		}

		occ := occurrenceFor(segment)
		xp := e.cfg.XPFor(TypeGameStreak, highest)
		key := Key{
			Party:         party,
			Year:          year,
			Type:          TypeGameStreak,
			Discriminator: fmt.Sprintf("%s-%d", game.ID, highest),
		}

		badges = append(badges, Badge{
			ID:           key.String(),
			key:          key,
			Year:         year,
			Party:        party,
			Type:         TypeGameStreak,
			Title:        fmt.Sprintf("%s mastery", game.Name),
			Subtitle:     fmt.Sprintf("%d consecutive wins on %s", highest, game.Name),
			TierLabel:    fmt.Sprintf("%dx %s", highest, game.Name),
			Description:  fmt.Sprintf("Dominated %s with consecutive victories.", game.Name),
			Gradient:     Gradient(paletteIndex + 2),
			AccentColor:  Accent(paletteIndex + 2),
			TextColor:    "#06121a",
			Game:         gameRef(game),
			EarnedLabels: []string{occ.EndLabel},
			EarnedAt:     []string{occ.EndISO},
			Streaks:      []StreakOccurrence{occ},
			XP:           xp,
			Rarity:       RarityFor(xp),
		})
	}

	return badges
}

// milestoneBadges walks the party's lifetime wins on one game and emits one
// badge per crossed threshold, earned at the exact threshold-crossing session.
func (e *Engine) milestoneBadges(party domain.Party, game domain.Game, sessions []domain.Session, paletteIndex int) []Badge {
	var wins []domain.Session
	for _, s := range sessions {
		p, ok := s.Winner.Party()
		if ok && p == party && s.GameID == game.ID {
			wins = append(wins, s)
		}
	}
	wins = sortSessions(wins)

	var badges []Badge
	for i, milestone := range e.cfg.MilestoneThresholds() {
		if len(wins) < milestone {
			continue
		}

		crossing := wins[milestone-1]
		label, iso := dateLabel(crossing.PlayedAt)
		xp := e.cfg.XPFor(TypeMilestone, milestone)
		key := Key{
			Party:         party,
			Year:          crossing.Year(),
			Type:          TypeMilestone,
			Discriminator: fmt.Sprintf("%s-%d", game.ID, milestone),
		}

		badges = append(badges, Badge{
			ID:             key.String(),
			key:            key,
			Year:           crossing.Year(),
			Party:          party,
			Type:           TypeMilestone,
			Title:          fmt.Sprintf("%d+ wins on %s", milestone, game.Name),
			Subtitle:       fmt.Sprintf("Lifetime achievement on %s", game.Name),
			TierLabel:      fmt.Sprintf("%d wins", milestone),
			Description:    fmt.Sprintf("Celebrates surpassing %d victories on %s.", milestone, game.Name),
			Gradient:       Gradient(paletteIndex + 4 + i),
			AccentColor:    Accent(paletteIndex + 4 + i),
			TextColor:      "#10141f",
			Game:           gameRef(game),
			EarnedLabels:   []string{label},
			EarnedAt:       []string{iso},
			MilestoneCount: milestone,
			XP:             xp,
			Rarity:         RarityFor(xp),
		})
	}

	return badges
}

func occurrenceFor(segment Segment) StreakOccurrence {
	first := segment.Sessions[0]
	last := segment.Sessions[len(segment.Sessions)-1]
	startLabel, startISO := dateLabel(first.PlayedAt)
	endLabel, endISO := dateLabel(last.PlayedAt)
	return StreakOccurrence{
		ID:         first.ID + "-" + last.ID,
		StartLabel: startLabel,
		StartISO:   startISO,
		EndLabel:   endLabel,
		EndISO:     endISO,
		Length:     segment.Length(),
	}
}

func gameRef(game domain.Game) *GameRef {
	return &GameRef{ID: game.ID, Name: game.Name, ImageURL: game.ImageURL}
}

// mergeLatest deduplicates badges on their composite key, keeping the version
// with the most recent first earned date. Input order is preserved.
func mergeLatest(badges []Badge) []Badge {
	index := map[Key]int{}
	var merged []Badge

	for _, b := range badges {
		at, seen := index[b.key]
		if !seen {
			index[b.key] = len(merged)
			merged = append(merged, b)
			continue
		}
		if len(b.EarnedAt) > 0 && len(merged[at].EarnedAt) > 0 && b.EarnedAt[0] > merged[at].EarnedAt[0] {
			merged[at] = b
		}
	}

	return merged
}

// filterEarnedIn keeps badges with at least one earned date in the given year.
func filterEarnedIn(badges []Badge, year int) []Badge {
	var out []Badge
	for _, b := range badges {
		for _, iso := range b.EarnedAt {
			t, err := time.Parse(time.RFC3339, iso)
			if err == nil && t.Year() == year {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func countRecent(badges []Badge, cutoff time.Time) int {
	count := 0
	for _, b := range badges {
		for _, iso := range b.EarnedAt {
			t, err := time.Parse(time.RFC3339, iso)
			if err == nil && !t.Before(cutoff) {
				count++
				break
			}
		}
	}
	return count
}

// yearsFrom returns the requested years sorted ascending with duplicates
// dropped, or, when none are requested, every distinct calendar year present
// in the sessions.
func yearsFrom(ctx Context) []int {
	seen := map[int]bool{}
	var years []int

	add := func(y int) {
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}

	if len(ctx.Years) > 0 {
		for _, y := range ctx.Years {
			add(y)
		}
	} else {
		for _, s := range ctx.Sessions {
			add(s.Year())
		}
	}

	sort.Ints(years)
	return years
}

func sessionsInYear(sessions []domain.Session, year int) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if s.Year() == year {
			out = append(out, s)
		}
	}
	return out
}

// gameScopes returns the snapshot's games plus a placeholder entry for every
// game ID referenced by a session but missing from the games list, so a
// dangling reference degrades instead of dropping the session's badges.
func gameScopes(ctx Context) []domain.Game {
	known := map[string]bool{}
	scopes := make([]domain.Game, 0, len(ctx.Games))
	for _, g := range ctx.Games {
		known[g.ID] = true
		scopes = append(scopes, g)
	}

	var orphaned []string
	for _, s := range ctx.Sessions {
		if s.GameID != "" && !known[s.GameID] {
			known[s.GameID] = true
			orphaned = append(orphaned, s.GameID)
		}
	}
	sort.Strings(orphaned)

	for _, id := range orphaned {
		scopes = append(scopes, domain.Game{ID: id, Name: "Unknown game"})
	}
	return scopes
}
