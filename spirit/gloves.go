package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// GlovesSpirit steals one non-gloves spirit from the opponent. The active
// decision maker picks which.
type GlovesSpirit struct{}

func (g *GlovesSpirit) Kind() game.Spirit { return game.Gloves }
func (g *GlovesSpirit) Description() string {
	return "Steal one spirit other than Gloves from your opponent."
}

func (g *GlovesSpirit) Apply(ctx context.Context, m *game.Match, user, opponent *game.Player) error {
	stealable := Stealable(opponent.Spirits)
	if len(stealable) == 0 {
		m.Emit(game.Event{Type: game.EventNothingHappened, Seat: user.Seat, Other: opponent.Seat, Item: game.Gloves.String(), Reason: "nothing to steal", Audience: game.Everyone})
		return nil
	}
	if user.HandFull() {
		m.Emit(game.Event{Type: game.EventHandFull, Seat: user.Seat, Other: opponent.Seat, Item: game.Gloves.String(), Amount: game.MaxSpirits, Audience: game.Everyone})
		return nil
	}
	thief := m.DecisionMaker(user)
	kind, err := m.ChooseSteal(ctx, thief, stealable)
	if err != nil {
		return err
	}
	m.TakeSpirit(opponent, kind)
	m.Emit(game.Event{Type: game.EventSpiritStolen, Seat: opponent.Seat, Other: user.Seat, Item: game.Label(kind, false), Audience: game.Everyone})
	m.GiveSpirit(user, kind, opponent.Seat)
	return nil
}

// Stealable filters a hand down to what gloves may take.
func Stealable(hand []game.Spirit) []game.Spirit {
	var out []game.Spirit
	for _, s := range hand {
		if s != game.Gloves {
			out = append(out, s)
		}
	}
	return out
}
