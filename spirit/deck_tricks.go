package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// MushroomSpirit swaps the user's next fate card for a random one.
type MushroomSpirit struct{}

func (s *MushroomSpirit) Kind() game.Spirit { return game.Mushroom }
func (s *MushroomSpirit) Description() string {
	return "The next fate card you draw is replaced by a random card."
}

func (s *MushroomSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	user.Status.MushroomEffect = true
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusMushroom, Audience: game.Everyone})
	return nil
}

// ShufflerSpirit swaps the front fate card with a random later one just
// before the user's next draw.
type ShufflerSpirit struct{}

func (s *ShufflerSpirit) Kind() game.Spirit { return game.Shuffler }
func (s *ShufflerSpirit) Description() string {
	return "Before your next draw the top fate card swaps places with a random card below it."
}

func (s *ShufflerSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	user.Status.ShufflerEffect = true
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusShuffler, Audience: game.Everyone})
	return nil
}

// MagnifyingGlassSpirit shows the user the front fate card.
type MagnifyingGlassSpirit struct{}

func (s *MagnifyingGlassSpirit) Kind() game.Spirit   { return game.MagnifyingGlass }
func (s *MagnifyingGlassSpirit) Description() string { return "Look at the top fate card." }

func (s *MagnifyingGlassSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	m.PeekFate(user, 1)
	return nil
}

// TelephoneSpirit lets the deciding player look at any one fate card.
type TelephoneSpirit struct{}

func (s *TelephoneSpirit) Kind() game.Spirit { return game.Telephone }
func (s *TelephoneSpirit) Description() string {
	return "Pick a position in the fate deck and secretly look at that card."
}

func (s *TelephoneSpirit) Apply(ctx context.Context, m *game.Match, user, _ *game.Player) error {
	listener := m.DecisionMaker(user)
	pos, err := m.ChoosePeek(ctx, listener)
	if err != nil {
		return err
	}
	m.PeekFate(listener, pos)
	return nil
}
