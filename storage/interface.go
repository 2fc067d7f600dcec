package storage

import (
	"context"
	"time"

	"github.com/bwwq/fate-roulette/stats"
)

// LocalProfile is the profile used when no identity is available (terminal
// play, or auth not configured).
const LocalProfile = "local"

// MatchRecord is one finished human-vs-AI match.
type MatchRecord struct {
	ID       string      `json:"id"`
	MatchID  string      `json:"matchId"`
	Opponent string      `json:"opponent"`
	Tier     int         `json:"tier"`
	Won      bool        `json:"won"`
	Rounds   int         `json:"rounds"`
	PlayedAt time.Time   `json:"playedAt"`
	Tally    stats.Tally `json:"-"`
}

// StatsStore abstracts persistence for unlock progress, accumulated
// statistics and match history. Implementations can be swapped for
// testing (mocks) or different backends.
type StatsStore interface {
	// Read
	LoadProgress(ctx context.Context, profile string) (int, error)
	LoadStats(ctx context.Context, profile string) (stats.Tally, error)
	ListMatches(ctx context.Context, profile string, limit int) ([]MatchRecord, error)

	// Write
	SaveProgress(ctx context.Context, profile string, level int) error
	RecordMatch(ctx context.Context, profile string, rec MatchRecord) error

	// Lifecycle
	Close()
}

// Ensure both backends implement StatsStore at compile time.
var (
	_ StatsStore = (*PGStore)(nil)
	_ StatsStore = (*SQLiteStore)(nil)
)

// InitialLevel is the unlocked level of a profile that has never won.
const InitialLevel = 1

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 200 {
		return 200
	}
	return limit
}
