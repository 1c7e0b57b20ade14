package badge_test

import (
	"reflect"
	"testing"
	"time"

	"boardgame-tracker/internal/badge"
	"boardgame-tracker/internal/domain"
)

func gameSession(id, gameID string, at time.Time, winner domain.Winner) domain.Session {
	return domain.Session{ID: id, GameID: gameID, PlayedAt: at, Winner: winner}
}

func streakOnlyConfig() badge.Config {
	return badge.Config{Streak: []badge.StreakTier{{Length: 5, XP: 150}}}
}

func TestCompute_EmptyInput(t *testing.T) {
	engine := badge.NewEngine(badge.DefaultConfig())
	got := engine.Compute(badge.Context{}, time.Now())

	if len(got.YearsUsed) != 0 {
		t.Errorf("expected no years, got %v", got.YearsUsed)
	}
	if len(got.ByYear) != 0 {
		t.Errorf("expected empty byYear, got %d entries", len(got.ByYear))
	}
	if len(got.AllBadges) != 0 {
		t.Errorf("expected empty allBadges, got %d entries", len(got.AllBadges))
	}
	if got.RecentCounts.PlayerA != 0 || got.RecentCounts.PlayerB != 0 {
		t.Errorf("expected zero recent counts, got %+v", got.RecentCounts)
	}
	if got.TotalXP != 0 {
		t.Errorf("expected zero total XP, got %d", got.TotalXP)
	}
}

func TestCompute_FiveWinStreak(t *testing.T) {
	// Five wins in a row on distinct dates with a tier at length 5 earns
	// exactly one streak badge worth 150 XP.
	engine := badge.NewEngine(streakOnlyConfig())

	var sessions []domain.Session
	for i := 0; i < 5; i++ {
		sessions = append(sessions, gameSession(
			"s"+string(rune('a'+i)), "g1",
			day(2024, 3, 1+i), domain.WinnerPlayerA,
		))
	}

	got := engine.Compute(badge.Context{Sessions: sessions}, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	if len(got.AllBadges) != 1 {
		t.Fatalf("expected exactly 1 badge, got %d", len(got.AllBadges))
	}
	year := got.ByYear[2024]
	if len(year.PlayerA) != 1 || len(year.PlayerB) != 0 {
		t.Fatalf("expected 1 badge for player A, got A=%d B=%d", len(year.PlayerA), len(year.PlayerB))
	}

	b := year.PlayerA[0]
	if b.Type != badge.TypeStreak {
		t.Errorf("expected streak type, got %s", b.Type)
	}
	if b.TierLabel != "5x Combo" {
		t.Errorf("unexpected tier label %q", b.TierLabel)
	}
	if b.Subtitle != "5 wins in a row" {
		t.Errorf("unexpected subtitle %q", b.Subtitle)
	}
	if b.XP != 150 || got.TotalXP != 150 {
		t.Errorf("expected 150 XP, got badge=%d total=%d", b.XP, got.TotalXP)
	}
	if len(b.Streaks) != 1 || b.Streaks[0].Length != 5 {
		t.Fatalf("expected one occurrence of length 5, got %+v", b.Streaks)
	}
	// Earned when the run ended.
	if len(b.EarnedAt) != 1 || b.EarnedAt[0] != b.Streaks[0].EndISO {
		t.Errorf("earned date should be the segment end: %v vs %v", b.EarnedAt, b.Streaks[0].EndISO)
	}
}

func TestCompute_StreakExceedsTier(t *testing.T) {
	engine := badge.NewEngine(streakOnlyConfig())

	var sessions []domain.Session
	for i := 0; i < 7; i++ {
		sessions = append(sessions, gameSession(
			"s"+string(rune('a'+i)), "g1",
			day(2024, 3, 1+i), domain.WinnerPlayerB,
		))
	}

	got := engine.Compute(badge.Context{Sessions: sessions}, time.Now())
	year := got.ByYear[2024]
	if len(year.PlayerB) != 1 {
		t.Fatalf("expected 1 badge, got %d", len(year.PlayerB))
	}
	if year.PlayerB[0].Subtitle != "7 wins in a row (highest tier 5)" {
		t.Errorf("unexpected subtitle %q", year.PlayerB[0].Subtitle)
	}
}

func TestCompute_MilestoneEarnedAtCrossing(t *testing.T) {
	// Three wins against a milestone at 2: the badge is earned on the date of
	// the second win, not the third, and a trailing loss changes nothing.
	engine := badge.NewEngine(badge.Config{Milestone: []badge.MilestoneTier{{Wins: 2, XP: 120}}})

	games := []domain.Game{{ID: "g1", Name: "Cascadia"}}
	sessions := []domain.Session{
		gameSession("s1", "g1", day(2024, 2, 1), domain.WinnerPlayerB),
		gameSession("s2", "g1", day(2024, 2, 8), domain.WinnerPlayerB),
		gameSession("s3", "g1", day(2024, 2, 15), domain.WinnerPlayerB),
		gameSession("s4", "g1", day(2024, 2, 20), domain.WinnerPlayerA),
	}

	got := engine.Compute(badge.Context{Games: games, Sessions: sessions}, time.Now())

	year := got.ByYear[2024]
	if len(year.PlayerB) != 1 {
		t.Fatalf("expected 1 milestone badge for player B, got %d", len(year.PlayerB))
	}
	b := year.PlayerB[0]
	if b.Type != badge.TypeMilestone {
		t.Errorf("expected milestone type, got %s", b.Type)
	}
	if b.MilestoneCount != 2 {
		t.Errorf("expected milestone count 2, got %d", b.MilestoneCount)
	}
	wantISO := day(2024, 2, 8).Format(time.RFC3339)
	if len(b.EarnedAt) != 1 || b.EarnedAt[0] != wantISO {
		t.Errorf("expected earned at %s (second win), got %v", wantISO, b.EarnedAt)
	}
	if b.Game == nil || b.Game.Name != "Cascadia" {
		t.Errorf("expected game ref Cascadia, got %+v", b.Game)
	}
}

func TestCompute_MilestoneGroupedUnderEarnedYear(t *testing.T) {
	// Milestone crossing is a lifetime event: a threshold crossed in 2023
	// appears only under 2023 even when later sessions extend into 2024.
	engine := badge.NewEngine(badge.Config{Milestone: []badge.MilestoneTier{{Wins: 2, XP: 120}}})

	sessions := []domain.Session{
		gameSession("s1", "g1", day(2023, 11, 1), domain.WinnerPlayerA),
		gameSession("s2", "g1", day(2023, 12, 1), domain.WinnerPlayerA),
		gameSession("s3", "g1", day(2024, 1, 10), domain.WinnerPlayerA),
	}

	got := engine.Compute(badge.Context{Sessions: sessions}, time.Now())

	if len(got.YearsUsed) != 2 {
		t.Fatalf("expected years [2023 2024], got %v", got.YearsUsed)
	}
	if len(got.ByYear[2023].PlayerA) != 1 {
		t.Errorf("expected milestone under 2023, got %d badges", len(got.ByYear[2023].PlayerA))
	}
	if len(got.ByYear[2024].PlayerA) != 0 {
		t.Errorf("expected no 2024 badges, got %d", len(got.ByYear[2024].PlayerA))
	}
	if len(got.AllBadges) != 1 {
		t.Errorf("expected a single deduplicated badge, got %d", len(got.AllBadges))
	}
}

func TestCompute_GameStreakBadge(t *testing.T) {
	engine := badge.NewEngine(badge.Config{GameStreak: []badge.StreakTier{{Length: 3, XP: 200}}})

	games := []domain.Game{{ID: "g1", Name: "Wingspan", ImageURL: "https://img/w.jpg"}}
	sessions := []domain.Session{
		gameSession("s1", "g1", day(2024, 5, 1), domain.WinnerPlayerA),
		// An interleaved win on another game does not break the per-game run.
		gameSession("x1", "g2", day(2024, 5, 2), domain.WinnerPlayerB),
		gameSession("s2", "g1", day(2024, 5, 3), domain.WinnerPlayerA),
		gameSession("s3", "g1", day(2024, 5, 5), domain.WinnerPlayerA),
	}

	got := engine.Compute(badge.Context{Games: games, Sessions: sessions}, time.Now())

	year := got.ByYear[2024]
	if len(year.PlayerA) != 1 {
		t.Fatalf("expected 1 game-streak badge, got %d", len(year.PlayerA))
	}
	b := year.PlayerA[0]
	if b.Type != badge.TypeGameStreak {
		t.Errorf("expected game-streak type, got %s", b.Type)
	}
	if b.Title != "Wingspan mastery" {
		t.Errorf("unexpected title %q", b.Title)
	}
	if b.Game == nil || b.Game.ImageURL != "https://img/w.jpg" {
		t.Errorf("expected game image carried through, got %+v", b.Game)
	}
}

func TestCompute_UnknownGameDegrades(t *testing.T) {
	// Sessions referencing a game missing from the snapshot still earn
	// game-scoped badges, with a placeholder game reference.
	engine := badge.NewEngine(badge.Config{GameStreak: []badge.StreakTier{{Length: 2, XP: 200}}})

	sessions := []domain.Session{
		gameSession("s1", "ghost", day(2024, 5, 1), domain.WinnerPlayerA),
		gameSession("s2", "ghost", day(2024, 5, 2), domain.WinnerPlayerA),
	}

	got := engine.Compute(badge.Context{Sessions: sessions}, time.Now())

	year := got.ByYear[2024]
	if len(year.PlayerA) != 1 {
		t.Fatalf("expected 1 badge, got %d", len(year.PlayerA))
	}
	b := year.PlayerA[0]
	if b.Game == nil || b.Game.Name != "Unknown game" || b.Game.ImageURL != "" {
		t.Errorf("expected degraded game ref, got %+v", b.Game)
	}
	if b.Game.ID != "ghost" {
		t.Errorf("expected game id carried through, got %q", b.Game.ID)
	}
}

func TestCompute_DedupKeepsLatestOccurrence(t *testing.T) {
	// Two qualifying runs at the same tier in one year collapse into one
	// badge carrying the more recent earned date.
	engine := badge.NewEngine(badge.Config{Streak: []badge.StreakTier{{Length: 2, XP: 50}}})

	sessions := []domain.Session{
		gameSession("s1", "g1", day(2024, 1, 1), domain.WinnerPlayerA),
		gameSession("s2", "g1", day(2024, 1, 2), domain.WinnerPlayerA),
		gameSession("s3", "g1", day(2024, 2, 1), domain.WinnerPlayerB),
		gameSession("s4", "g1", day(2024, 3, 1), domain.WinnerPlayerA),
		gameSession("s5", "g1", day(2024, 3, 2), domain.WinnerPlayerA),
	}

	got := engine.Compute(badge.Context{Sessions: sessions}, time.Now())

	year := got.ByYear[2024]
	if len(year.PlayerA) != 1 {
		t.Fatalf("expected deduplicated single badge, got %d", len(year.PlayerA))
	}
	wantISO := day(2024, 3, 2).Format(time.RFC3339)
	if year.PlayerA[0].EarnedAt[0] != wantISO {
		t.Errorf("expected latest occurrence %s, got %s", wantISO, year.PlayerA[0].EarnedAt[0])
	}
	if got.TotalXP != 50 {
		t.Errorf("deduplicated badge must count once: total XP %d", got.TotalXP)
	}
}

func TestCompute_IdentityStableWhenRunExtends(t *testing.T) {
	engine := badge.NewEngine(badge.Config{Streak: []badge.StreakTier{{Length: 3, XP: 100}, {Length: 5, XP: 300}}})

	var sessions []domain.Session
	for i := 0; i < 3; i++ {
		sessions = append(sessions, gameSession("s"+string(rune('a'+i)), "g1", day(2024, 6, 1+i), domain.WinnerPlayerA))
	}

	before := engine.Compute(badge.Context{Sessions: sessions}, time.Now())

	// One more win: still below the next tier, so the id must not change.
	sessions = append(sessions, gameSession("sd", "g1", day(2024, 6, 4), domain.WinnerPlayerA))
	after := engine.Compute(badge.Context{Sessions: sessions}, time.Now())

	if len(before.AllBadges) != 1 || len(after.AllBadges) != 1 {
		t.Fatalf("expected 1 badge in both runs, got %d and %d", len(before.AllBadges), len(after.AllBadges))
	}
	var beforeID, afterID string
	for id := range before.AllBadges {
		beforeID = id
	}
	for id := range after.AllBadges {
		afterID = id
	}
	if beforeID != afterID {
		t.Errorf("badge id changed from %s to %s without crossing a tier", beforeID, afterID)
	}

	// A fifth win crosses the next tier and produces the higher tier's id.
	sessions = append(sessions, gameSession("se", "g1", day(2024, 6, 5), domain.WinnerPlayerA))
	crossed := engine.Compute(badge.Context{Sessions: sessions}, time.Now())
	if _, ok := crossed.AllBadges[afterID]; ok {
		t.Errorf("expected the segment badge to move to the higher tier id")
	}
	if len(crossed.AllBadges) != 1 {
		t.Fatalf("expected 1 badge after crossing, got %d", len(crossed.AllBadges))
	}
	for _, b := range crossed.AllBadges {
		if b.TierLabel != "5x Combo" || b.XP != 300 {
			t.Errorf("expected tier 5 badge, got %q xp=%d", b.TierLabel, b.XP)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	engine := badge.NewEngine(badge.DefaultConfig())

	games := []domain.Game{{ID: "g1", Name: "Cascadia"}, {ID: "g2", Name: "Wingspan"}}
	var sessions []domain.Session
	winners := []domain.Winner{domain.WinnerPlayerA, domain.WinnerPlayerA, domain.WinnerPlayerB, domain.WinnerTie}
	for i := 0; i < 40; i++ {
		sessions = append(sessions, gameSession(
			"s"+string(rune('a'+i%26))+string(rune('a'+i/26)),
			games[i%2].ID,
			day(2024, 1, 1).Add(time.Duration(i*30)*time.Hour),
			winners[i%len(winners)],
		))
	}

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	first := engine.Compute(badge.Context{Games: games, Sessions: sessions}, now)
	second := engine.Compute(badge.Context{Games: games, Sessions: sessions}, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("two computations over the same snapshot and instant differ")
	}
}

func TestCompute_RecentCounts(t *testing.T) {
	engine := badge.NewEngine(badge.Config{Streak: []badge.StreakTier{{Length: 2, XP: 50}}})
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	sessions := []domain.Session{
		// Player A's run ends 5 days before now: recent.
		gameSession("s1", "g1", day(2024, 6, 24), domain.WinnerPlayerA),
		gameSession("s2", "g1", day(2024, 6, 25), domain.WinnerPlayerA),
		// Player B's run ended in January: not recent.
		gameSession("s3", "g1", day(2024, 1, 10), domain.WinnerPlayerB),
		gameSession("s4", "g1", day(2024, 1, 11), domain.WinnerPlayerB),
	}

	got := engine.Compute(badge.Context{Sessions: sessions}, now)

	if got.RecentCounts.PlayerA != 1 {
		t.Errorf("expected 1 recent badge for player A, got %d", got.RecentCounts.PlayerA)
	}
	if got.RecentCounts.PlayerB != 0 {
		t.Errorf("expected 0 recent badges for player B, got %d", got.RecentCounts.PlayerB)
	}
}

func TestCompute_YearsSortedAndDeduplicated(t *testing.T) {
	engine := badge.NewEngine(badge.DefaultConfig())

	got := engine.Compute(badge.Context{Years: []int{2025, 2023, 2025, 2024}}, time.Now())
	want := []int{2023, 2024, 2025}
	if !reflect.DeepEqual(got.YearsUsed, want) {
		t.Errorf("got years %v, want %v", got.YearsUsed, want)
	}
}
