package ai

import (
	"context"
	"log/slog"

	"github.com/bwwq/fate-roulette/ai/heuristic"
	"github.com/bwwq/fate-roulette/game"
)

// Scoring tier tuning.
const (
	// UseThreshold is the score a spirit must beat to be used.
	UseThreshold = 35
	// ForceFloor is the lowest forced-use score worth acting on.
	ForceFloor = 20

	repeatPenalty     = -1000
	knownDamageRed    = 120
	knownDamageMirror = 60
	aggressiveBoost   = 1.5
	defensiveBoost    = 1.8
	lowHPThreshold    = 2
)

var aggressiveKinds = map[game.Spirit]bool{
	game.RedPotion: true, game.Eraser: true, game.Handcuffs: true, game.RemoteControl: true, game.Radio: true,
}

var defensiveKinds = map[game.Spirit]bool{
	game.Amulet: true, game.Mirror: true, game.GreenPotion: true,
}

// Scoring rates every held spirit with the heuristic table and acts on the
// best one above UseThreshold. It remembers the front fate card when it
// has peeked it.
type Scoring struct {
	params    Params
	knownNext game.FateCard
	// adjust refines the base tendency; nil keeps it.
	adjust func(heuristic.Tendency) heuristic.Tendency
}

// NewScoring returns a tier 2 decider.
func NewScoring(p Params) *Scoring {
	return &Scoring{params: p}
}

// KnownNext returns the remembered front fate card, or FateNone.
func (s *Scoring) KnownNext() game.FateCard { return s.knownNext }

// Tendency derives the stance for v.
func (s *Scoring) Tendency(v game.TurnView) heuristic.Tendency {
	t := heuristic.Stable
	switch {
	case v.Self.HP <= lowHPThreshold:
		t = heuristic.Defensive
	case v.Opponent.HP <= lowHPThreshold:
		t = heuristic.Aggressive
	}
	if s.adjust != nil {
		t = s.adjust(t)
	}
	return t
}

func (s *Scoring) situation(v game.TurnView, t heuristic.Tendency) heuristic.Situation {
	return heuristic.Situation{Self: v.Self, Opponent: v.Opponent, KnownNext: s.knownNext, Tendency: t}
}

// Score rates using kind now.
func (s *Scoring) Score(kind game.Spirit, v game.TurnView, t heuristic.Tendency) float64 {
	score := heuristic.UseScore(kind, s.situation(v, t))
	if s.knownNext.IsDamaging() {
		switch kind {
		case game.RedPotion:
			score += knownDamageRed
		case game.Mirror:
			score += knownDamageMirror
		}
	}
	if t == heuristic.Aggressive && aggressiveKinds[kind] {
		score *= aggressiveBoost
	}
	if t == heuristic.Defensive && defensiveKinds[kind] {
		score *= defensiveBoost
	}
	if kind.NonRepeatable() && v.LastUsed == kind {
		score = repeatPenalty
	}
	return score
}

// best returns the hand index with the strictly highest positive score,
// or -1.
func (s *Scoring) best(v game.TurnView, t heuristic.Tendency) (int, float64) {
	idx, highest := -1, 0.0
	for i, kind := range v.Self.Spirits {
		if score := s.Score(kind, v, t); score > highest {
			idx, highest = i, score
		}
	}
	return idx, highest
}

func (s *Scoring) ChooseAction(ctx context.Context, v game.TurnView) (game.Action, error) {
	if err := think(ctx, s.params.Delay); err != nil {
		return game.Action{}, err
	}
	if v.Self.Status.IsHandcuffed {
		return game.DrawFate(), nil
	}
	t := s.Tendency(v)
	idx, score := s.best(v, t)
	if idx >= 0 && score > UseThreshold {
		slog.Debug("decided to use spirit", "tag", "ai", "name", s.params.Name, "spirit", v.Self.Spirits[idx].String(), "score", score, "tendency", t.String())
		return game.UseSpirit(idx), nil
	}
	slog.Debug("decided to draw", "tag", "ai", "name", s.params.Name, "best", score, "tendency", t.String())
	return game.DrawFate(), nil
}

// ChooseTarget aims at self only when the known next card is harmless.
func (s *Scoring) ChooseTarget(ctx context.Context, _ game.TurnView) (game.Target, error) {
	if err := think(ctx, s.params.Delay/2); err != nil {
		return game.TargetOpponent, err
	}
	if s.knownNext == game.TheVoid || s.knownNext == game.DivineBoon {
		return game.TargetSelf, nil
	}
	return game.TargetOpponent, nil
}

func (s *Scoring) ChooseStealTarget(_ context.Context, _ game.TurnView, candidates []game.Spirit) (int, error) {
	if i := heuristic.PickSteal(candidates); i >= 0 {
		return i, nil
	}
	return s.params.RNG.Intn(len(candidates)), nil
}

// ChooseForcedUse picks the candidate that would hurt the chooser least,
// declining when nothing reaches ForceFloor.
func (s *Scoring) ChooseForcedUse(_ context.Context, v game.TurnView, candidates []game.Spirit) (int, bool, error) {
	sit := s.situation(v, s.Tendency(v))
	idx, highest := -1, 0.0
	for i, kind := range candidates {
		score := heuristic.ForceScore(kind, sit)
		if idx < 0 || score > highest {
			idx, highest = i, score
		}
	}
	if idx < 0 || highest < ForceFloor {
		return 0, false, nil
	}
	return idx, true, nil
}

func (s *Scoring) ChoosePeekPosition(_ context.Context, _ game.TurnView, deckSize int) (int, error) {
	return 1 + s.params.RNG.Intn(deckSize), nil
}

// Observe keeps the remembered front card fresh.
func (s *Scoring) Observe(ev game.Event) {
	switch ev.Type {
	case game.EventTurnStarted:
		if ev.Seat == s.params.Seat {
			s.knownNext = game.FateNone
		}
	case game.EventCardDrawn, game.EventDeckRegenerated:
		s.knownNext = game.FateNone
	case game.EventCardPeeked:
		if ev.Seat == s.params.Seat && ev.Position == 1 {
			s.knownNext = ev.Card
		}
	}
}
