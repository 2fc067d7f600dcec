// Package lobby sets up human-vs-AI and hot-seat matches, runs them and
// persists the outcome.
package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/bwwq/fate-roulette/ai"
	"github.com/bwwq/fate-roulette/config"
	"github.com/bwwq/fate-roulette/game"
	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/stats"
	"github.com/bwwq/fate-roulette/storage"
)

// HumanSeat is the seat a human takes against the AI.
const HumanSeat = 0

// Lobby creates matches. It is safe for concurrent use as long as the
// store is.
type Lobby struct {
	config  *config.Config
	spirits game.SpiritProvider
	store   storage.StatsStore

	// NewRNG returns the randomness for one match.
	NewRNG func() game.RNG
}

// New returns a Lobby. store may be nil, in which case progress is not
// persisted and every profile is at storage.InitialLevel.
func New(cfg *config.Config, spirits game.SpiritProvider, store storage.StatsStore) *Lobby {
	return &Lobby{
		config:  cfg,
		spirits: spirits,
		store:   store,
		NewRNG: func() game.RNG {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Request describes a human-vs-AI match.
type Request struct {
	Profile string
	Name    string
	Tier    ai.Tier
	Human   game.Decider
	// Sinks receive every event of the match; they filter by audience.
	Sinks []game.EventSink
}

// Result is the outcome of a finished match.
type Result struct {
	MatchID  string
	Winner   int
	HumanWon bool
	Rounds   int
	Tally    stats.Tally
	// Unlocked is the profile's level after the match.
	Unlocked int
}

// OpponentProfile returns the configured AI profile for tier, or a default
// named after the tier.
func OpponentProfile(cfg *config.Config, tier ai.Tier) config.AIParams {
	if p, ok := cfg.Profile(int(tier)); ok {
		return p
	}
	return config.AIParams{Tier: int(tier), Name: tier.String() + " AI"}
}

// Config returns the configuration the lobby was built with.
func (l *Lobby) Config() *config.Config { return l.config }

// Progress returns the unlocked level of profile. Storage failures are
// logged and treated as a fresh profile.
func (l *Lobby) Progress(ctx context.Context, profile string) int {
	if l.store == nil {
		return storage.InitialLevel
	}
	level, err := l.store.LoadProgress(ctx, profile)
	if err != nil {
		slog.Warn("failed to load progress", "tag", "lobby", "profile", profile, "err", err)
		return storage.InitialLevel
	}
	return level
}

// Stats returns the accumulated statistics of profile.
func (l *Lobby) Stats(ctx context.Context, profile string) (stats.Tally, error) {
	if l.store == nil {
		return stats.NewTally(), matcherrors.ErrNotConfigured
	}
	return l.store.LoadStats(ctx, profile)
}

// Play runs a human-vs-AI match to completion. A tier above the profile's
// unlocked level is rejected with ErrLevelLocked. A match aborted by ctx
// records nothing.
func (l *Lobby) Play(ctx context.Context, req Request) (Result, error) {
	unlocked := l.Progress(ctx, req.Profile)
	if req.Tier < ai.TierReactive || req.Tier > ai.TierTracking {
		return Result{}, fmt.Errorf("difficulty %d: unknown tier", int(req.Tier))
	}
	if !Allowed(unlocked, req.Tier) {
		return Result{}, fmt.Errorf("difficulty %d with level %d unlocked: %w", int(req.Tier), unlocked, matcherrors.ErrLevelLocked)
	}

	rng := l.NewRNG()
	profile := OpponentProfile(l.config, req.Tier)
	opponent, err := ai.New(req.Tier, ai.ParamsFromConfig(profile, 1-HumanSeat, rng))
	if err != nil {
		return Result{}, err
	}

	var players [2]*game.Player
	var deciders [2]game.Decider
	players[HumanSeat] = game.NewPlayer(HumanSeat, req.Name)
	players[1-HumanSeat] = game.NewPlayer(1-HumanSeat, profile.Name)
	deciders[HumanSeat] = req.Human
	deciders[1-HumanSeat] = opponent

	m := game.NewMatch(uuid.NewString(), players, deciders, l.spirits, rng)
	rec := stats.NewRecorder(HumanSeat)
	m.AddSink(rec)
	for _, s := range req.Sinks {
		m.AddSink(s)
	}

	slog.Info("match created", "tag", "lobby", "matchID", m.ID, "human", req.Name, "opponent", profile.Name, "tier", req.Tier.String())
	m.Deal()
	winner, err := m.Run(ctx)
	if err != nil {
		slog.Info("match aborted", "tag", "lobby", "matchID", m.ID, "err", err)
		return Result{MatchID: m.ID, Winner: game.NoSeat, Unlocked: unlocked}, err
	}

	res := Result{
		MatchID:  m.ID,
		Winner:   winner,
		HumanWon: winner == HumanSeat,
		Rounds:   m.Round,
		Tally:    rec.Tally(),
		Unlocked: NextUnlockedLevel(unlocked, req.Tier, winner == HumanSeat),
	}
	l.persist(ctx, req, profile.Name, unlocked, res)
	return res, nil
}

// persist stores the match outcome. Failures are logged; the match result
// stands regardless.
func (l *Lobby) persist(ctx context.Context, req Request, opponent string, unlocked int, res Result) {
	if l.store == nil {
		return
	}
	rec := storage.MatchRecord{
		MatchID:  res.MatchID,
		Opponent: opponent,
		Tier:     int(req.Tier),
		Won:      res.HumanWon,
		Rounds:   res.Rounds,
		PlayedAt: time.Now(),
		Tally:    res.Tally,
	}
	if err := l.store.RecordMatch(ctx, req.Profile, rec); err != nil {
		slog.Error("failed to record match", "tag", "lobby", "matchID", res.MatchID, "err", err)
	}
	if res.Unlocked != unlocked {
		if err := l.store.SaveProgress(ctx, req.Profile, res.Unlocked); err != nil {
			slog.Error("failed to save progress", "tag", "lobby", "profile", req.Profile, "err", err)
			return
		}
		slog.Info("level unlocked", "tag", "lobby", "profile", req.Profile, "level", res.Unlocked)
	}
}

// HotSeat runs a match between two local humans. Nothing is recorded.
func (l *Lobby) HotSeat(ctx context.Context, names [2]string, deciders [2]game.Decider, sinks ...game.EventSink) (Result, error) {
	if deciders[0] == nil || deciders[1] == nil {
		return Result{}, errors.New("hot-seat match needs two deciders")
	}
	players := [2]*game.Player{game.NewPlayer(0, names[0]), game.NewPlayer(1, names[1])}
	m := game.NewMatch(uuid.NewString(), players, deciders, l.spirits, l.NewRNG())
	for _, s := range sinks {
		m.AddSink(s)
	}
	slog.Info("hot-seat match created", "tag", "lobby", "matchID", m.ID)
	m.Deal()
	winner, err := m.Run(ctx)
	if err != nil {
		return Result{MatchID: m.ID, Winner: game.NoSeat}, err
	}
	return Result{MatchID: m.ID, Winner: winner, Rounds: m.Round}, nil
}
