package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/bwwq/fate-roulette/config"
	"github.com/bwwq/fate-roulette/game"
)

// Tier selects an opponent's decision policy. Tiers double as the
// unlockable difficulty levels.
type Tier int

const (
	TierReactive Tier = 1
	TierScoring  Tier = 2
	TierTracking Tier = 3
)

// String returns the display name of a Tier.
func (t Tier) String() string {
	switch t {
	case TierReactive:
		return "Hard"
	case TierScoring:
		return "Expert"
	case TierTracking:
		return "Hell"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Params configures one AI seat.
type Params struct {
	Seat  int
	Name  string
	Delay time.Duration
	RNG   game.RNG
}

// ParamsFromConfig builds Params for seat from a configured profile.
func ParamsFromConfig(p config.AIParams, seat int, rng game.RNG) Params {
	return Params{
		Seat:  seat,
		Name:  p.Name,
		Delay: time.Duration(p.DelayMS) * time.Millisecond,
		RNG:   rng,
	}
}

// New returns the decider for tier.
func New(tier Tier, p Params) (game.Decider, error) {
	switch tier {
	case TierReactive:
		return NewReactive(p), nil
	case TierScoring:
		return NewScoring(p), nil
	case TierTracking:
		return NewTracking(p), nil
	default:
		return nil, fmt.Errorf("unknown AI tier %d", int(tier))
	}
}

// think pauses for d so a watching human can follow along. It returns
// early with ctx's error when ctx is done.
func think(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
