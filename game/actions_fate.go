package game

import "log/slog"

// drawFate is the only path that takes a card off the fate deck. It
// consumes the drawer's shuffler and mushroom modifiers.
func (m *Match) drawFate(drawer *Player) FateCard {
	shuffle := drawer.Status.ShufflerEffect
	substitute := drawer.Status.MushroomEffect
	drawer.Status.ShufflerEffect = false
	drawer.Status.MushroomEffect = false

	res := m.FateDeck.Draw(shuffle, substitute)
	if res.Shuffled {
		m.Emit(Event{Type: EventDeckShuffled, Seat: drawer.Seat, Other: NoSeat, Item: Shuffler.String(), Audience: Everyone})
	}
	if res.Substituted {
		m.Emit(Event{Type: EventCardSubstituted, Seat: drawer.Seat, Other: NoSeat, Item: Mushroom.String(), Card: res.Replaced, Audience: Everyone})
	}
	m.Emit(Event{Type: EventCardDrawn, Seat: drawer.Seat, Other: NoSeat, Card: res.Card, Amount: m.FateDeck.Len(), Audience: Everyone})
	return res.Card
}

// ResolveFate applies card drawn by user against target. A mirrored
// target bounces the card to the other seat; damage bounced this way
// gains MirrorReflectBonus.
func (m *Match) ResolveFate(card FateCard, user, target *Player) {
	if m.Finished {
		return
	}
	reflected := false
	if target.Status.IsMirrored {
		target.Status.IsMirrored = false
		bounced := m.Opponent(target)
		m.Emit(Event{Type: EventMirrorReflected, Seat: target.Seat, Other: bounced.Seat, Item: Mirror.String(), Card: card, Revealed: true, Audience: Everyone})
		target = bounced
		reflected = card.IsDamaging()
	}
	m.Emit(Event{Type: EventCardResolved, Seat: user.Seat, Other: target.Seat, Card: card, Audience: Everyone})

	switch card {
	case DivinePunishment, Backlash:
		amount := 1 + user.Status.RedPotionBonus
		lost := m.Damage(target, user, amount, reflected)
		if card == Backlash && lost > 0 && !m.Finished {
			m.GrantExtraTurn(target)
		}
		user.Status.RedPotionBonus = 0
	case DivineBoon:
		m.DrawSpirits(target, 1)
	case TheVoid:
		if target == user {
			m.GrantExtraTurn(user)
		} else {
			m.Emit(Event{Type: EventNothingHappened, Seat: target.Seat, Other: NoSeat, Card: card, Audience: Everyone})
		}
	case Reincarnation:
		next := m.drawFate(target)
		m.ResolveFate(next, target, target)
	default:
		slog.Error("unknown fate card", "tag", "game", "matchID", m.ID, "card", int(card))
		m.Emit(Event{Type: EventDiagnostic, Seat: user.Seat, Other: NoSeat, Card: card, Reason: "unknown fate card", Audience: Everyone})
	}
}

// PeekFate returns the card at 1-based position pos and tells only seat
// viewer about it.
func (m *Match) PeekFate(viewer *Player, pos int) (FateCard, bool) {
	card, ok := m.FateDeck.Peek(pos - 1)
	if !ok {
		return FateNone, false
	}
	m.Emit(Event{Type: EventCardPeeked, Seat: viewer.Seat, Other: NoSeat, Card: card, Position: pos, Audience: viewer.Seat})
	return card, true
}
