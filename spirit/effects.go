package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// HandcuffsSpirit locks the opponent's spirits for their next turn and
// compensates them with one spirit. Pillow immunity blocks it.
type HandcuffsSpirit struct{}

func (h *HandcuffsSpirit) Kind() game.Spirit { return game.Handcuffs }
func (h *HandcuffsSpirit) Description() string {
	return "Your opponent cannot use spirits on their next turn but draws one spirit. Cannot be used twice in a row."
}

func (h *HandcuffsSpirit) Apply(_ context.Context, m *game.Match, user, opponent *game.Player) error {
	if opponent.Status.PillowImmunity > 0 {
		m.Emit(game.Event{Type: game.EventStatusBlocked, Seat: opponent.Seat, Other: user.Seat, Status: game.StatusHandcuffed, Item: game.Pillow.String(), Audience: game.Everyone})
		return nil
	}
	opponent.Status.IsHandcuffed = true
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: opponent.Seat, Other: user.Seat, Status: game.StatusHandcuffed, Audience: game.Everyone})
	m.DrawSpirits(opponent, 1)
	return nil
}

// RemoteControlSpirit makes the opponent draw a fate card on themselves
// when the user's turn ends.
type RemoteControlSpirit struct{}

func (r *RemoteControlSpirit) Kind() game.Spirit { return game.RemoteControl }
func (r *RemoteControlSpirit) Description() string {
	return "When your turn ends, your opponent draws a fate card and uses it on themselves. Cannot be used twice in a row."
}

func (r *RemoteControlSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	user.Status.RemoteControlActive = true
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusRemoteControl, Audience: game.Everyone})
	return nil
}

// CreationSpirit draws two spirits.
type CreationSpirit struct{}

func (c *CreationSpirit) Kind() game.Spirit   { return game.Creation }
func (c *CreationSpirit) Description() string { return "Draw two spirits." }

func (c *CreationSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	m.DrawSpirits(user, game.CreationSpiritsDrawn)
	return nil
}

// PillowSpirit draws three spirits, ends the turn, skips the user's next
// turn and shields them from handcuffs for three of their turn starts.
type PillowSpirit struct{}

func (p *PillowSpirit) Kind() game.Spirit { return game.Pillow }
func (p *PillowSpirit) Description() string {
	return "Draw three spirits and end your turn. You skip your next turn but cannot be handcuffed for a while."
}

func (p *PillowSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	m.DrawSpirits(user, 3)
	user.Status.SkipNextTurn = true
	user.Status.PillowImmunity = game.PillowImmunityTurns
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusSkipTurn, Audience: game.Everyone})
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusPillowImmunity, Amount: game.PillowImmunityTurns, Audience: game.Everyone})
	return nil
}

// ContractSpirit costs 2 HP now. If the user survives, the first time
// their HP later reaches 0 they get a last stand instead of losing.
type ContractSpirit struct{}

func (c *ContractSpirit) Kind() game.Spirit { return game.Contract }
func (c *ContractSpirit) Description() string {
	return "Lose 2 HP now. The next time your HP reaches 0 you survive with 1 HP, draw three spirits and take one final turn."
}

func (c *ContractSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	m.Damage(user, user, game.ContractSelfDamage, false)
	if m.Finished {
		return nil
	}
	user.Status.HasContract = true
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusContract, Audience: game.Everyone})
	return nil
}
