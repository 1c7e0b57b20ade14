package badge

import "sort"

// StreakTier maps a consecutive-win length to its XP reward. Used for both
// the overall and the per-game streak families.
type StreakTier struct {
	Length int
	XP     int
}

// MilestoneTier maps a cumulative lifetime win count on one game to its XP reward.
type MilestoneTier struct {
	Wins int
	XP   int
}

// Config holds the three achievement tier tables. It is immutable at runtime;
// tests substitute smaller tables through NewEngine.
type Config struct {
	Streak     []StreakTier
	GameStreak []StreakTier
	Milestone  []MilestoneTier
}

func DefaultConfig() Config {
	return Config{
		Streak: []StreakTier{
			{Length: 5, XP: 150},
			{Length: 10, XP: 400},
			{Length: 15, XP: 700},
			{Length: 20, XP: 1000},
			{Length: 25, XP: 1400},
		},
		GameStreak: []StreakTier{
			{Length: 5, XP: 200},
			{Length: 10, XP: 450},
			{Length: 15, XP: 800},
			{Length: 20, XP: 1100},
		},
		Milestone: []MilestoneTier{
			{Wins: 10, XP: 120},
			{Wins: 20, XP: 250},
			{Wins: 30, XP: 400},
			{Wins: 50, XP: 750},
			{Wins: 75, XP: 1050},
			{Wins: 100, XP: 1500},
			{Wins: 150, XP: 2200},
		},
	}
}

// StreakThresholds returns the overall streak lengths, sorted ascending.
func (c Config) StreakThresholds() []int {
	out := make([]int, len(c.Streak))
	for i, t := range c.Streak {
		out[i] = t.Length
	}
	sort.Ints(out)
	return out
}

// GameStreakThresholds returns the per-game streak lengths, sorted ascending.
func (c Config) GameStreakThresholds() []int {
	out := make([]int, len(c.GameStreak))
	for i, t := range c.GameStreak {
		out[i] = t.Length
	}
	sort.Ints(out)
	return out
}

// MilestoneThresholds returns the lifetime win counts, sorted ascending.
func (c Config) MilestoneThresholds() []int {
	out := make([]int, len(c.Milestone))
	for i, t := range c.Milestone {
		out[i] = t.Wins
	}
	sort.Ints(out)
	return out
}

// XPFor returns the XP reward for an exact threshold in one family,
// or 0 when the threshold is not configured.
func (c Config) XPFor(typ Type, threshold int) int {
	switch typ {
	case TypeStreak:
		for _, t := range c.Streak {
			if t.Length == threshold {
				return t.XP
			}
		}
	case TypeGameStreak:
		for _, t := range c.GameStreak {
			if t.Length == threshold {
				return t.XP
			}
		}
	case TypeMilestone:
		for _, t := range c.Milestone {
			if t.Wins == threshold {
				return t.XP
			}
		}
	}
	return 0
}

// HighestTier returns the largest threshold <= observed, or ok=false when no
// threshold qualifies. Total over any threshold set, including an empty one.
func HighestTier(observed int, thresholds []int) (int, bool) {
	best, ok := 0, false
	for _, t := range thresholds {
		if t <= observed && (!ok || t > best) {
			best, ok = t, true
		}
	}
	return best, ok
}
