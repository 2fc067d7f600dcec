package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// RadioSpirit takes control of one of the opponent's spirits: the
// opponent spends it on themselves and the radio's chooser answers every
// choice it raises.
type RadioSpirit struct{}

func (r *RadioSpirit) Kind() game.Spirit { return game.Radio }
func (r *RadioSpirit) Description() string {
	return "Force your opponent to use one of their spirits. You make its choices."
}

func (r *RadioSpirit) Apply(ctx context.Context, m *game.Match, user, opponent *game.Player) error {
	if len(opponent.Spirits) == 0 {
		m.Emit(game.Event{Type: game.EventNothingHappened, Seat: opponent.Seat, Other: user.Seat, Item: game.Radio.String(), Reason: "no spirits to control", Audience: game.Everyone})
		return nil
	}
	chooser := m.DecisionMaker(user)
	candidates := make([]game.Spirit, len(opponent.Spirits))
	copy(candidates, opponent.Spirits)
	kind, ok, err := m.ChooseForced(ctx, chooser, candidates)
	if err != nil {
		return err
	}
	if !ok {
		m.Emit(game.Event{Type: game.EventNothingHappened, Seat: chooser.Seat, Other: opponent.Seat, Item: game.Radio.String(), Reason: "declined", Audience: game.Everyone})
		return nil
	}
	return m.ForceUse(ctx, chooser, opponent, kind)
}
