package badge_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"boardgame-tracker/internal/badge"
	"boardgame-tracker/internal/domain"
)

func session(id string, at time.Time, winner domain.Winner) domain.Session {
	return domain.Session{
		ID:       id,
		GameID:   "g1",
		PlayedAt: at,
		Winner:   winner,
	}
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 20, 0, 0, 0, time.UTC)
}

func TestSegments_Empty(t *testing.T) {
	if got := badge.Segments(nil); len(got) != 0 {
		t.Fatalf("expected no segments, got %d", len(got))
	}
}

func TestSegments_SingleRun(t *testing.T) {
	sessions := []domain.Session{
		session("s1", day(2024, 1, 1), domain.WinnerPlayerA),
		session("s2", day(2024, 1, 3), domain.WinnerPlayerA),
		session("s3", day(2024, 1, 5), domain.WinnerPlayerA),
	}

	segments := badge.Segments(sessions)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Party != domain.PartyA {
		t.Errorf("expected party A, got %s", segments[0].Party)
	}
	if segments[0].Length() != 3 {
		t.Errorf("expected length 3, got %d", segments[0].Length())
	}
}

func TestSegments_BreakOnPartyChange(t *testing.T) {
	sessions := []domain.Session{
		session("s1", day(2024, 1, 1), domain.WinnerPlayerA),
		session("s2", day(2024, 1, 2), domain.WinnerPlayerA),
		session("s3", day(2024, 1, 3), domain.WinnerPlayerB),
		session("s4", day(2024, 1, 4), domain.WinnerPlayerA),
	}

	segments := badge.Segments(sessions)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	lengths := []int{2, 1, 1}
	parties := []domain.Party{domain.PartyA, domain.PartyB, domain.PartyA}
	for i, seg := range segments {
		if seg.Length() != lengths[i] {
			t.Errorf("segment %d: expected length %d, got %d", i, lengths[i], seg.Length())
		}
		if seg.Party != parties[i] {
			t.Errorf("segment %d: expected party %s, got %s", i, parties[i], seg.Party)
		}
	}
}

func TestSegments_SameDayOppositeWinners(t *testing.T) {
	// Two sessions on one calendar day with different winners must produce
	// two distinct single-session segments.
	at := day(2024, 6, 10)
	sessions := []domain.Session{
		session("s1", at, domain.WinnerPlayerA),
		session("s2", at.Add(time.Hour), domain.WinnerPlayerB),
	}

	segments := badge.Segments(sessions)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Party != domain.PartyA || segments[1].Party != domain.PartyB {
		t.Errorf("unexpected parties: %s, %s", segments[0].Party, segments[1].Party)
	}
}

func TestSegments_TieBreaksStreak(t *testing.T) {
	sessions := []domain.Session{
		session("s1", day(2024, 1, 1), domain.WinnerPlayerA),
		session("s2", day(2024, 1, 2), domain.WinnerPlayerA),
		session("s3", day(2024, 1, 3), domain.WinnerTie),
		session("s4", day(2024, 1, 4), domain.WinnerPlayerA),
	}

	segments := badge.Segments(sessions)
	if len(segments) != 2 {
		t.Fatalf("expected tie to split the run into 2 segments, got %d", len(segments))
	}
	if segments[0].Length() != 2 || segments[1].Length() != 1 {
		t.Errorf("expected lengths 2 and 1, got %d and %d", segments[0].Length(), segments[1].Length())
	}
	for _, seg := range segments {
		for _, s := range seg.Sessions {
			if s.Winner == domain.WinnerTie {
				t.Errorf("tie session %s must not appear in any segment", s.ID)
			}
		}
	}
}

func TestSegments_UnsortedInput(t *testing.T) {
	sessions := []domain.Session{
		session("s3", day(2024, 1, 5), domain.WinnerPlayerB),
		session("s1", day(2024, 1, 1), domain.WinnerPlayerA),
		session("s2", day(2024, 1, 3), domain.WinnerPlayerA),
	}

	segments := badge.Segments(sessions)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Sessions[0].ID != "s1" || segments[0].Sessions[1].ID != "s2" {
		t.Errorf("segment 0 out of order: %v", segments[0].Sessions)
	}
}

func TestSegments_PartitionProperty(t *testing.T) {
	// Randomized shuffles: segments must partition the sorted non-tie input
	// exactly, regardless of input order.
	rng := rand.New(rand.NewSource(7))
	winners := []domain.Winner{domain.WinnerPlayerA, domain.WinnerPlayerB, domain.WinnerTie}

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40)
		sessions := make([]domain.Session, n)
		for i := range sessions {
			sessions[i] = session(
				fmt.Sprintf("s%03d", i),
				day(2024, 1, 1).Add(time.Duration(rng.Intn(200))*time.Hour),
				winners[rng.Intn(len(winners))],
			)
		}
		shuffled := make([]domain.Session, n)
		copy(shuffled, sessions)
		rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		segments := badge.Segments(shuffled)

		var flattened []string
		for i, seg := range segments {
			if seg.Length() == 0 {
				t.Fatalf("trial %d: empty segment %d", trial, i)
			}
			for _, s := range seg.Sessions {
				p, ok := s.Winner.Party()
				if !ok {
					t.Fatalf("trial %d: tie session in segment", trial)
				}
				if p != seg.Party {
					t.Fatalf("trial %d: session winner %s in segment owned by %s", trial, p, seg.Party)
				}
				flattened = append(flattened, s.ID)
			}
		}

		seen := map[string]bool{}
		for _, id := range flattened {
			if seen[id] {
				t.Fatalf("trial %d: session %s appears twice", trial, id)
			}
			seen[id] = true
		}
		want := 0
		for _, s := range sessions {
			if s.Winner != domain.WinnerTie {
				want++
			}
		}
		if len(flattened) != want {
			t.Fatalf("trial %d: expected %d sessions across segments, got %d", trial, want, len(flattened))
		}
	}
}
