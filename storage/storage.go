package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/stats"
)

const createTablesPG = `
CREATE TABLE IF NOT EXISTS profiles (
	profile_id     TEXT PRIMARY KEY,
	unlocked_level INT  NOT NULL DEFAULT 1,
	wins           INT  NOT NULL DEFAULT 0,
	losses         INT  NOT NULL DEFAULT 0,
	damage_dealt   INT  NOT NULL DEFAULT 0,
	damage_taken   INT  NOT NULL DEFAULT 0,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS spirit_uses (
	profile_id TEXT NOT NULL REFERENCES profiles(profile_id),
	label      TEXT NOT NULL,
	uses       INT  NOT NULL DEFAULT 0,
	PRIMARY KEY (profile_id, label)
);
CREATE TABLE IF NOT EXISTS fate_draws (
	profile_id TEXT NOT NULL REFERENCES profiles(profile_id),
	card       TEXT NOT NULL,
	draws      INT  NOT NULL DEFAULT 0,
	PRIMARY KEY (profile_id, card)
);
CREATE TABLE IF NOT EXISTS match_history (
	id         UUID PRIMARY KEY,
	match_id   TEXT NOT NULL,
	profile_id TEXT NOT NULL REFERENCES profiles(profile_id),
	opponent   TEXT NOT NULL,
	tier       SMALLINT NOT NULL,
	won        BOOLEAN NOT NULL,
	rounds     INT NOT NULL,
	played_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_match_history_profile ON match_history(profile_id, played_at DESC);
`

// PGStore persists statistics and progress in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to Postgres and ensures the tables exist.
// If databaseURL is empty, NewPGStore returns (nil, nil) and no persistence occurs.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTablesPG); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &PGStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PGStore) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// LoadProgress returns the unlocked level of profile, InitialLevel if unknown.
func (s *PGStore) LoadProgress(ctx context.Context, profile string) (int, error) {
	if s == nil || s.pool == nil {
		return InitialLevel, matcherrors.ErrNotConfigured
	}
	var level int
	err := s.pool.QueryRow(ctx, `SELECT unlocked_level FROM profiles WHERE profile_id = $1`, profile).Scan(&level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InitialLevel, nil
		}
		return InitialLevel, err
	}
	return level, nil
}

// SaveProgress stores the unlocked level of profile.
func (s *PGStore) SaveProgress(ctx context.Context, profile string, level int) error {
	if s == nil || s.pool == nil {
		return matcherrors.ErrNotConfigured
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (profile_id, unlocked_level) VALUES ($1, $2)
		ON CONFLICT (profile_id) DO UPDATE SET unlocked_level = EXCLUDED.unlocked_level, updated_at = now()`,
		profile, level)
	return err
}

// RecordMatch adds one match's tally to profile's counters and appends a
// history row, in one transaction.
func (s *PGStore) RecordMatch(ctx context.Context, profile string, rec MatchRecord) error {
	if s == nil || s.pool == nil {
		return matcherrors.ErrNotConfigured
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t := rec.Tally
	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (profile_id, wins, losses, damage_dealt, damage_taken) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id) DO UPDATE SET
			wins = profiles.wins + EXCLUDED.wins,
			losses = profiles.losses + EXCLUDED.losses,
			damage_dealt = profiles.damage_dealt + EXCLUDED.damage_dealt,
			damage_taken = profiles.damage_taken + EXCLUDED.damage_taken,
			updated_at = now()`,
		profile, t.Wins, t.Losses, t.DamageDealt, t.DamageTaken)
	if err != nil {
		return err
	}
	for label, n := range t.SpiritUses {
		if _, err := tx.Exec(ctx, `
			INSERT INTO spirit_uses (profile_id, label, uses) VALUES ($1, $2, $3)
			ON CONFLICT (profile_id, label) DO UPDATE SET uses = spirit_uses.uses + EXCLUDED.uses`,
			profile, label, n); err != nil {
			return err
		}
	}
	for card, n := range t.FateDraws {
		if _, err := tx.Exec(ctx, `
			INSERT INTO fate_draws (profile_id, card, draws) VALUES ($1, $2, $3)
			ON CONFLICT (profile_id, card) DO UPDATE SET draws = fate_draws.draws + EXCLUDED.draws`,
			profile, card, n); err != nil {
			return err
		}
	}
	playedAt := rec.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO match_history (id, match_id, profile_id, opponent, tier, won, rounds, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), rec.MatchID, profile, rec.Opponent, rec.Tier, rec.Won, rec.Rounds, playedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LoadStats returns the accumulated statistics of profile. An unknown
// profile has an empty tally.
func (s *PGStore) LoadStats(ctx context.Context, profile string) (stats.Tally, error) {
	out := stats.NewTally()
	if s == nil || s.pool == nil {
		return out, matcherrors.ErrNotConfigured
	}
	err := s.pool.QueryRow(ctx, `
		SELECT wins, losses, damage_dealt, damage_taken FROM profiles WHERE profile_id = $1`,
		profile).Scan(&out.Wins, &out.Losses, &out.DamageDealt, &out.DamageTaken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, nil
		}
		return out, err
	}
	if err := s.loadCounts(ctx, `SELECT label, uses FROM spirit_uses WHERE profile_id = $1`, profile, out.SpiritUses); err != nil {
		return out, err
	}
	if err := s.loadCounts(ctx, `SELECT card, draws FROM fate_draws WHERE profile_id = $1`, profile, out.FateDraws); err != nil {
		return out, err
	}
	return out, nil
}

func (s *PGStore) loadCounts(ctx context.Context, query, profile string, into map[string]int) error {
	rows, err := s.pool.Query(ctx, query, profile)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}

// ListMatches returns profile's most recent matches, newest first.
func (s *PGStore) ListMatches(ctx context.Context, profile string, limit int) ([]MatchRecord, error) {
	if s == nil || s.pool == nil {
		return []MatchRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, match_id, opponent, tier, won, rounds, played_at
		FROM match_history
		WHERE profile_id = $1
		ORDER BY played_at DESC
		LIMIT $2`,
		profile, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MatchRecord{}
	for rows.Next() {
		var r MatchRecord
		var id uuid.UUID
		if err := rows.Scan(&id, &r.MatchID, &r.Opponent, &r.Tier, &r.Won, &r.Rounds, &r.PlayedAt); err != nil {
			return nil, err
		}
		r.ID = id.String()
		r.PlayedAt = r.PlayedAt.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
