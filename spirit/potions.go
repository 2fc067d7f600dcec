package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// GreenPotionSpirit heals 1 HP.
type GreenPotionSpirit struct{}

func (g *GreenPotionSpirit) Kind() game.Spirit   { return game.GreenPotion }
func (g *GreenPotionSpirit) Description() string { return "Restore 1 HP." }

func (g *GreenPotionSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	m.Heal(user, 1)
	return nil
}

// RedPotionSpirit adds 1 to the next damaging fate card the user causes.
type RedPotionSpirit struct{}

func (r *RedPotionSpirit) Kind() game.Spirit { return game.RedPotion }
func (r *RedPotionSpirit) Description() string {
	return "Your next damaging fate card deals 1 more damage."
}

func (r *RedPotionSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	user.Status.RedPotionBonus += game.RedPotionBonus
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusRedPotion, Amount: user.Status.RedPotionBonus, Audience: game.Everyone})
	return nil
}

// White potion outcomes, weighted 49/49/1/1.
type whiteOutcome struct {
	weight int
	heal   int
	harm   int
}

var whiteOutcomes = []whiteOutcome{
	{weight: 49, heal: 1},
	{weight: 49, harm: 1},
	{weight: 1, heal: 2},
	{weight: 1, harm: 2},
}

// WhitePotionSpirit gambles: usually heal 1 or lose 1, rarely 2 either way.
type WhitePotionSpirit struct{}

func (w *WhitePotionSpirit) Kind() game.Spirit { return game.WhitePotion }
func (w *WhitePotionSpirit) Description() string {
	return "Heal 1 or lose 1 HP with equal odds. Rarely the effect is 2."
}

func (w *WhitePotionSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	o := pickWhiteOutcome(m.Rand())
	if o.heal > 0 {
		m.Heal(user, o.heal)
		return nil
	}
	m.Damage(user, user, o.harm, false)
	return nil
}

func pickWhiteOutcome(rng game.RNG) whiteOutcome {
	total := 0
	for _, o := range whiteOutcomes {
		total += o.weight
	}
	roll := rng.Intn(total)
	for _, o := range whiteOutcomes {
		roll -= o.weight
		if roll < 0 {
			return o
		}
	}
	return whiteOutcomes[0]
}
