package badge

import (
	"sort"

	"boardgame-tracker/internal/domain"
)

// Segment is a maximal run of consecutive sessions won by one party within a
// scope (the whole timeline, or a single game's timeline).
type Segment struct {
	Party    domain.Party
	Sessions []domain.Session
}

// Length returns the streak length of the segment.
func (s Segment) Length() int {
	return len(s.Sessions)
}

// sortSessions orders sessions chronologically. The store gives no ordering
// guarantee, and sessions may share a timestamp; the session ID is the
// secondary key so the order is deterministic regardless of input order.
func sortSessions(sessions []domain.Session) []domain.Session {
	sorted := make([]domain.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PlayedAt.Equal(sorted[j].PlayedAt) {
			return sorted[i].PlayedAt.Before(sorted[j].PlayedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Segments partitions a session history into maximal same-winner runs.
// A change of winning party closes the current segment. A tie closes the
// current segment without opening a new one, so a tie never extends and never
// joins two streaks. The concatenation of all segments reproduces the sorted
// non-tie sessions exactly.
func Segments(sessions []domain.Session) []Segment {
	sorted := sortSessions(sessions)

	var segments []Segment
	current := -1

	for _, session := range sorted {
		party, ok := session.Winner.Party()
		if !ok {
			current = -1
			continue
		}

		if current >= 0 && segments[current].Party == party {
			segments[current].Sessions = append(segments[current].Sessions, session)
			continue
		}

		segments = append(segments, Segment{Party: party, Sessions: []domain.Session{session}})
		current = len(segments) - 1
	}

	return segments
}
