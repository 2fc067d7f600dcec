package ai

import (
	"context"
	"log/slog"

	"github.com/bwwq/fate-roulette/game"
)

// Reactive tier tuning.
const (
	reactiveUseChance    = 0.4
	reactiveOpponentOdds = 0.9
)

// Reactive plays mostly at random: it sometimes uses a random spirit and
// nearly always aims fate at the opponent.
type Reactive struct {
	params Params
}

// NewReactive returns a tier 1 decider.
func NewReactive(p Params) *Reactive {
	return &Reactive{params: p}
}

func (r *Reactive) ChooseAction(ctx context.Context, v game.TurnView) (game.Action, error) {
	if err := think(ctx, r.params.Delay/2); err != nil {
		return game.Action{}, err
	}
	rng := r.params.RNG
	if len(v.Self.Spirits) > 0 && !v.Self.Status.IsHandcuffed && rng.Float64() < reactiveUseChance {
		idx := rng.Intn(len(v.Self.Spirits))
		slog.Debug("using random spirit", "tag", "ai", "name", r.params.Name, "index", idx)
		return game.UseSpirit(idx), nil
	}
	return game.DrawFate(), nil
}

func (r *Reactive) ChooseTarget(ctx context.Context, _ game.TurnView) (game.Target, error) {
	if err := think(ctx, r.params.Delay/4); err != nil {
		return game.TargetOpponent, err
	}
	if r.params.RNG.Float64() < reactiveOpponentOdds {
		return game.TargetOpponent, nil
	}
	return game.TargetSelf, nil
}

func (r *Reactive) ChooseStealTarget(_ context.Context, _ game.TurnView, candidates []game.Spirit) (int, error) {
	return r.params.RNG.Intn(len(candidates)), nil
}

func (r *Reactive) ChooseForcedUse(_ context.Context, _ game.TurnView, candidates []game.Spirit) (int, bool, error) {
	return r.params.RNG.Intn(len(candidates)), true, nil
}

func (r *Reactive) ChoosePeekPosition(_ context.Context, _ game.TurnView, deckSize int) (int, error) {
	return 1 + r.params.RNG.Intn(deckSize), nil
}
