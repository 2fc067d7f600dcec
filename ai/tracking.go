package ai

import (
	"github.com/bwwq/fate-roulette/ai/heuristic"
	"github.com/bwwq/fate-roulette/game"
)

// Tracking thresholds on the share of damaging cards left in the deck.
const (
	threatHigh = 0.6
	threatLow  = 0.2
)

// Tracking is Scoring with full knowledge of each regenerated fate deck.
// It counts cards off as they are drawn and shifts its tendency with the
// share of damaging cards left.
type Tracking struct {
	*Scoring
	composition map[game.FateCard]int
}

// NewTracking returns a tier 3 decider.
func NewTracking(p Params) *Tracking {
	t := &Tracking{Scoring: NewScoring(p), composition: make(map[game.FateCard]int)}
	t.Scoring.adjust = t.adjust
	return t
}

// TrackDeck implements game.DeckTracker.
func (t *Tracking) TrackDeck(cards []game.FateCard) {
	t.composition = make(map[game.FateCard]int)
	for _, c := range cards {
		t.composition[c]++
	}
}

// Observe implements game.EventObserver.
func (t *Tracking) Observe(ev game.Event) {
	t.Scoring.Observe(ev)
	if ev.Type != game.EventCardDrawn {
		return
	}
	if t.composition[ev.Card] > 0 {
		t.composition[ev.Card]--
		if t.composition[ev.Card] == 0 {
			delete(t.composition, ev.Card)
		}
	}
}

// Composition returns a copy of the cards believed to be left.
func (t *Tracking) Composition() map[game.FateCard]int {
	out := make(map[game.FateCard]int, len(t.composition))
	for k, v := range t.composition {
		out[k] = v
	}
	return out
}

func (t *Tracking) adjust(base heuristic.Tendency) heuristic.Tendency {
	ratio, ok := heuristic.DamageRatio(t.composition)
	if !ok {
		return base
	}
	if ratio > threatHigh && base != heuristic.Aggressive {
		return heuristic.Defensive
	}
	if ratio < threatLow && base == heuristic.Stable {
		return heuristic.Aggressive
	}
	return base
}
