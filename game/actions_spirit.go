package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwwq/fate-roulette/matcherrors"
)

// CanUse checks whether p may use the spirit at hand position idx now.
func (m *Match) CanUse(p *Player, idx int) error {
	if m.Finished {
		return matcherrors.ErrMatchOver
	}
	if p.Status.IsHandcuffed {
		return matcherrors.ErrHandcuffed
	}
	if len(p.Spirits) == 0 {
		return matcherrors.ErrEmptyHand
	}
	if idx < 0 || idx >= len(p.Spirits) {
		return matcherrors.ErrNoSuchSpirit
	}
	kind := p.Spirits[idx]
	if kind.NonRepeatable() && m.lastUsed[p.Seat] == kind {
		return matcherrors.ErrRepeatUse
	}
	return nil
}

// UseSpirit removes the spirit at idx from p's hand and applies it. The
// spirit is spent even if its effect turns out to be a no-op.
func (m *Match) UseSpirit(ctx context.Context, p *Player, idx int) (Spirit, error) {
	if err := m.CanUse(p, idx); err != nil {
		return SpiritNone, err
	}
	kind := p.removeAt(idx)
	m.lastUsed[p.Seat] = kind
	m.Emit(Event{Type: EventSpiritUsed, Seat: p.Seat, Other: NoSeat, Item: Label(kind, false), Audience: Everyone})
	return kind, m.applySpirit(ctx, kind, p, m.Opponent(p))
}

func (m *Match) applySpirit(ctx context.Context, kind Spirit, user, opponent *Player) error {
	def, ok := m.Spirits.Spirit(kind)
	if !ok || def.Apply == nil {
		slog.Error("spirit has no handler", "tag", "game", "matchID", m.ID, "spirit", kind.String(), "err", matcherrors.ErrUnknownSpirit)
		m.Emit(Event{Type: EventDiagnostic, Seat: user.Seat, Other: NoSeat, Item: Label(kind, false), Reason: matcherrors.ErrUnknownSpirit.Error(), Audience: Everyone})
		return nil
	}
	return def.Apply(ctx, m, user, opponent)
}

// DecisionMaker returns who answers choices for an effect belonging to
// user: the forcing player while a forced use is resolving, else user.
func (m *Match) DecisionMaker(user *Player) *Player {
	if n := len(m.deciding); n > 0 {
		return m.Players[m.deciding[n-1]]
	}
	return user
}

// ForceUse makes victim spend kind from their hand with chooser answering
// any nested choice.
func (m *Match) ForceUse(ctx context.Context, chooser, victim *Player, kind Spirit) error {
	if !victim.remove(kind) {
		return fmt.Errorf("forcing %s: %w", kind, matcherrors.ErrNoSuchSpirit)
	}
	m.Emit(Event{Type: EventSpiritForced, Seat: victim.Seat, Other: chooser.Seat, Item: Label(kind, false), Audience: Everyone})
	m.deciding = append(m.deciding, chooser.Seat)
	defer func() { m.deciding = m.deciding[:len(m.deciding)-1] }()
	return m.applySpirit(ctx, kind, victim, chooser)
}

// ChooseSteal asks decider which of candidates to take. Out-of-range
// answers are reported to the decider and asked again.
func (m *Match) ChooseSteal(ctx context.Context, decider *Player, candidates []Spirit) (Spirit, error) {
	d := m.Deciders[decider.Seat]
	for {
		idx, err := d.ChooseStealTarget(ctx, m.View(decider.Seat), candidates)
		if err != nil {
			return SpiritNone, err
		}
		if idx >= 0 && idx < len(candidates) {
			return candidates[idx], nil
		}
		m.rejectChoice(decider, matcherrors.ErrNoSuchSpirit)
	}
}

// ChooseForced asks decider which of candidates to force, if any.
func (m *Match) ChooseForced(ctx context.Context, decider *Player, candidates []Spirit) (Spirit, bool, error) {
	d := m.Deciders[decider.Seat]
	for {
		idx, ok, err := d.ChooseForcedUse(ctx, m.View(decider.Seat), candidates)
		if err != nil {
			return SpiritNone, false, err
		}
		if !ok {
			return SpiritNone, false, nil
		}
		if idx >= 0 && idx < len(candidates) {
			return candidates[idx], true, nil
		}
		m.rejectChoice(decider, matcherrors.ErrNoSuchSpirit)
	}
}

// ChoosePeek asks decider for a 1-based fate deck position. An empty deck
// is regenerated first.
func (m *Match) ChoosePeek(ctx context.Context, decider *Player) (int, error) {
	d := m.Deciders[decider.Seat]
	m.FateDeck.ensure()
	for {
		size := m.FateDeck.Len()
		pos, err := d.ChoosePeekPosition(ctx, m.View(decider.Seat), size)
		if err != nil {
			return 0, err
		}
		if pos >= 1 && pos <= size {
			return pos, nil
		}
		m.rejectChoice(decider, fmt.Errorf("position must be between 1 and %d", size))
	}
}

func (m *Match) rejectChoice(p *Player, err error) {
	m.Emit(Event{Type: EventInvalidChoice, Seat: p.Seat, Other: NoSeat, Reason: err.Error(), Audience: p.Seat})
}
