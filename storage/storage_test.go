package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/stats"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "fate.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewPGStore_EmptyURL(t *testing.T) {
	s, err := NewPGStore(context.Background(), "")
	if s != nil || err != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", s, err)
	}
	// A nil store reports itself as not configured instead of panicking.
	if _, err := s.LoadProgress(context.Background(), LocalProfile); !errors.Is(err, matcherrors.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if err := s.RecordMatch(context.Background(), LocalProfile, MatchRecord{}); !errors.Is(err, matcherrors.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if list, err := s.ListMatches(context.Background(), LocalProfile, 5); err != nil || len(list) != 0 {
		t.Errorf("expected an empty list, got %v %v", list, err)
	}
	s.Close()
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(" "); !errors.Is(err, matcherrors.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSQLiteStore_Progress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	level, err := s.LoadProgress(ctx, "alice")
	if err != nil || level != InitialLevel {
		t.Fatalf("expected initial level, got %d %v", level, err)
	}
	if err := s.SaveProgress(ctx, "alice", 3); err != nil {
		t.Fatal(err)
	}
	if level, _ := s.LoadProgress(ctx, "alice"); level != 3 {
		t.Errorf("expected level 3, got %d", level)
	}
	if level, _ := s.LoadProgress(ctx, "bob"); level != InitialLevel {
		t.Errorf("expected other profiles untouched, got %d", level)
	}
}

func TestSQLiteStore_RecordMatchAccumulates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := stats.NewTally()
	first.Wins = 1
	first.DamageDealt = 4
	first.SpiritUses["PILLOW"] = 1
	first.FateDraws["BACKLASH"] = 2
	second := stats.NewTally()
	second.Losses = 1
	second.DamageTaken = 5
	second.SpiritUses["PILLOW"] = 2
	second.SpiritUses["MYSTERIOUS_CHARM"] = 1

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := s.RecordMatch(ctx, "alice", MatchRecord{MatchID: "m1", Opponent: "Hard AI", Tier: 1, Won: true, Rounds: 9, PlayedAt: base, Tally: first}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordMatch(ctx, "alice", MatchRecord{MatchID: "m2", Opponent: "Expert AI", Tier: 2, Rounds: 12, PlayedAt: base.Add(time.Minute), Tally: second}); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadStats(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.Wins != 1 || got.Losses != 1 || got.DamageDealt != 4 || got.DamageTaken != 5 {
		t.Errorf("unexpected counters %+v", got)
	}
	if got.SpiritUses["PILLOW"] != 3 || got.SpiritUses["MYSTERIOUS_CHARM"] != 1 || got.FateDraws["BACKLASH"] != 2 {
		t.Errorf("unexpected maps %v %v", got.SpiritUses, got.FateDraws)
	}

	list, err := s.ListMatches(ctx, "alice", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	if list[0].MatchID != "m2" || list[0].Won || list[1].MatchID != "m1" || !list[1].Won {
		t.Errorf("unexpected history order %+v", list)
	}
	if list[0].ID == "" || list[0].ID == list[1].ID {
		t.Error("expected distinct history ids")
	}
	if !list[1].PlayedAt.Equal(base) {
		t.Errorf("expected played_at %v, got %v", base, list[1].PlayedAt)
	}
}

func TestSQLiteStore_RecordKeepsProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveProgress(ctx, "alice", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordMatch(ctx, "alice", MatchRecord{MatchID: "m1", Tally: stats.NewTally()}); err != nil {
		t.Fatal(err)
	}
	if level, _ := s.LoadProgress(ctx, "alice"); level != 2 {
		t.Errorf("expected recording a match to keep level 2, got %d", level)
	}
}

func TestSQLiteStore_UnknownProfileStats(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LoadStats(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if got.Games() != 0 || got.SpiritUses == nil {
		t.Errorf("expected an empty allocated tally, got %+v", got)
	}
}
