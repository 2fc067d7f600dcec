package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// EraserSpirit removes up to two random spirits from the opponent's hand.
// Removed hidden spirits are revealed.
type EraserSpirit struct{}

func (e *EraserSpirit) Kind() game.Spirit { return game.Eraser }
func (e *EraserSpirit) Description() string {
	return "Erase two random spirits from your opponent's hand."
}

func (e *EraserSpirit) Apply(_ context.Context, m *game.Match, user, opponent *game.Player) error {
	if len(opponent.Spirits) == 0 {
		m.Emit(game.Event{Type: game.EventNothingHappened, Seat: opponent.Seat, Other: user.Seat, Item: game.Eraser.String(), Reason: "no spirits to erase", Audience: game.Everyone})
		return nil
	}
	for _, kind := range sample(m.Rand(), opponent.Spirits, game.EraserRemoveCount) {
		m.TakeSpirit(opponent, kind)
		m.Emit(game.Event{Type: game.EventSpiritRemoved, Seat: opponent.Seat, Other: user.Seat, Item: game.Label(kind, true), Revealed: kind.IsHidden(), Audience: game.Everyone})
	}
	return nil
}

// sample picks min(n, len(hand)) distinct hand slots at random.
func sample(rng game.RNG, hand []game.Spirit, n int) []game.Spirit {
	idx := make([]int, len(hand))
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]game.Spirit, n)
	for i := 0; i < n; i++ {
		out[i] = hand[idx[i]]
	}
	return out
}
