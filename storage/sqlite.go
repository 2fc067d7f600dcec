package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/stats"
)

const createTablesSQLite = `
CREATE TABLE IF NOT EXISTS profiles (
	profile_id     TEXT PRIMARY KEY,
	unlocked_level INTEGER NOT NULL DEFAULT 1,
	wins           INTEGER NOT NULL DEFAULT 0,
	losses         INTEGER NOT NULL DEFAULT 0,
	damage_dealt   INTEGER NOT NULL DEFAULT 0,
	damage_taken   INTEGER NOT NULL DEFAULT 0,
	updated_at     INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS spirit_uses (
	profile_id TEXT NOT NULL REFERENCES profiles(profile_id),
	label      TEXT NOT NULL,
	uses       INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (profile_id, label)
);
CREATE TABLE IF NOT EXISTS fate_draws (
	profile_id TEXT NOT NULL REFERENCES profiles(profile_id),
	card       TEXT NOT NULL,
	draws      INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (profile_id, card)
);
CREATE TABLE IF NOT EXISTS match_history (
	id         TEXT PRIMARY KEY,
	match_id   TEXT NOT NULL,
	profile_id TEXT NOT NULL REFERENCES profiles(profile_id),
	opponent   TEXT NOT NULL,
	tier       INTEGER NOT NULL,
	won        INTEGER NOT NULL,
	rounds     INTEGER NOT NULL,
	played_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_match_history_profile ON match_history(profile_id, played_at DESC);
`

// SQLiteStore persists statistics and progress in a local SQLite file,
// for terminal play without a server database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path: %w", matcherrors.ErrNotConfigured)
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(createTablesSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	slog.Info("opened SQLite store", "tag", "storage", "path", path)
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() {
	if s != nil && s.db != nil {
		_ = s.db.Close()
	}
}

// LoadProgress returns the unlocked level of profile, InitialLevel if unknown.
func (s *SQLiteStore) LoadProgress(ctx context.Context, profile string) (int, error) {
	if s == nil || s.db == nil {
		return InitialLevel, matcherrors.ErrNotConfigured
	}
	var level int
	err := s.db.QueryRowContext(ctx, `SELECT unlocked_level FROM profiles WHERE profile_id = ?`, profile).Scan(&level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return InitialLevel, nil
		}
		return InitialLevel, err
	}
	return level, nil
}

// SaveProgress stores the unlocked level of profile.
func (s *SQLiteStore) SaveProgress(ctx context.Context, profile string, level int) error {
	if s == nil || s.db == nil {
		return matcherrors.ErrNotConfigured
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (profile_id, unlocked_level, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET unlocked_level = excluded.unlocked_level, updated_at = excluded.updated_at`,
		profile, level, time.Now().Unix())
	return err
}

// RecordMatch adds one match's tally to profile's counters and appends a
// history row, in one transaction.
func (s *SQLiteStore) RecordMatch(ctx context.Context, profile string, rec MatchRecord) error {
	if s == nil || s.db == nil {
		return matcherrors.ErrNotConfigured
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	playedAt := rec.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	t := rec.Tally
	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (profile_id, wins, losses, damage_dealt, damage_taken, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			wins = wins + excluded.wins,
			losses = losses + excluded.losses,
			damage_dealt = damage_dealt + excluded.damage_dealt,
			damage_taken = damage_taken + excluded.damage_taken,
			updated_at = excluded.updated_at`,
		profile, t.Wins, t.Losses, t.DamageDealt, t.DamageTaken, playedAt.Unix())
	if err != nil {
		return err
	}
	for label, n := range t.SpiritUses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO spirit_uses (profile_id, label, uses) VALUES (?, ?, ?)
			ON CONFLICT(profile_id, label) DO UPDATE SET uses = uses + excluded.uses`,
			profile, label, n); err != nil {
			return err
		}
	}
	for card, n := range t.FateDraws {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fate_draws (profile_id, card, draws) VALUES (?, ?, ?)
			ON CONFLICT(profile_id, card) DO UPDATE SET draws = draws + excluded.draws`,
			profile, card, n); err != nil {
			return err
		}
	}
	won := 0
	if rec.Won {
		won = 1
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO match_history (id, match_id, profile_id, opponent, tier, won, rounds, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.MatchID, profile, rec.Opponent, rec.Tier, won, rec.Rounds, playedAt.UnixMilli())
	if err != nil {
		return err
	}
	return tx.Commit()
}

// LoadStats returns the accumulated statistics of profile. An unknown
// profile has an empty tally.
func (s *SQLiteStore) LoadStats(ctx context.Context, profile string) (stats.Tally, error) {
	out := stats.NewTally()
	if s == nil || s.db == nil {
		return out, matcherrors.ErrNotConfigured
	}
	err := s.db.QueryRowContext(ctx, `
		SELECT wins, losses, damage_dealt, damage_taken FROM profiles WHERE profile_id = ?`,
		profile).Scan(&out.Wins, &out.Losses, &out.DamageDealt, &out.DamageTaken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, nil
		}
		return out, err
	}
	if err := s.loadCounts(ctx, `SELECT label, uses FROM spirit_uses WHERE profile_id = ?`, profile, out.SpiritUses); err != nil {
		return out, err
	}
	if err := s.loadCounts(ctx, `SELECT card, draws FROM fate_draws WHERE profile_id = ?`, profile, out.FateDraws); err != nil {
		return out, err
	}
	return out, nil
}

func (s *SQLiteStore) loadCounts(ctx context.Context, query, profile string, into map[string]int) error {
	rows, err := s.db.QueryContext(ctx, query, profile)
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
func (s *SQLiteStore) ListMatches(ctx context.Context, profile string, limit int) ([]MatchRecord, error) {
	if s == nil || s.db == nil {
		return []MatchRecord{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_id, opponent, tier, won, rounds, played_at
		FROM match_history
		WHERE profile_id = ?
		ORDER BY played_at DESC, rowid DESC
		LIMIT ?`,
		profile, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MatchRecord{}
	for rows.Next() {
		var r MatchRecord
		var won int
		var playedAt int64
		if err := rows.Scan(&r.ID, &r.MatchID, &r.Opponent, &r.Tier, &won, &r.Rounds, &playedAt); err != nil {
			return nil, err
		}
		r.Won = won != 0
		r.PlayedAt = time.UnixMilli(playedAt).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
