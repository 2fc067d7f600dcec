package spirit

import (
	"context"

	"github.com/bwwq/fate-roulette/game"
)

// AmuletSpirit raises a barrier for the user's next two turn starts. While
// it holds, a 1-point hit is absorbed and a bigger hit shatters it for
// double damage.
type AmuletSpirit struct{}

func (a *AmuletSpirit) Kind() game.Spirit { return game.Amulet }
func (a *AmuletSpirit) Description() string {
	return "Absorbs 1-point hits until your second turn starts. A bigger hit breaks it and deals double."
}

func (a *AmuletSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	user.Status.AmuletTurns = game.AmuletTurns
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusBarrier, Amount: game.AmuletTurns, Audience: game.Everyone})
	return nil
}

// MirrorSpirit bounces the next fate card aimed at the user until their
// next turn starts.
type MirrorSpirit struct{}

func (s *MirrorSpirit) Kind() game.Spirit { return game.Mirror }
func (s *MirrorSpirit) Description() string {
	return "The next fate card aimed at you bounces to the other player. Bounced damage is increased by 1."
}

func (s *MirrorSpirit) Apply(_ context.Context, m *game.Match, user, _ *game.Player) error {
	user.Status.IsMirrored = true
	m.Emit(game.Event{Type: game.EventStatusApplied, Seat: user.Seat, Other: game.NoSeat, Status: game.StatusReflection, Audience: game.Everyone})
	return nil
}
