package console

import (
	"context"
	"strings"

	"github.com/bwwq/fate-roulette/game"
)

// Decider is a game.Decider for a human at the terminal.
type Decider struct {
	term *Terminal
}

var _ game.Decider = (*Decider)(nil)

// NewDecider returns a Decider prompting on term. Hot-seat players share
// one Terminal.
func NewDecider(term *Terminal) *Decider {
	return &Decider{term: term}
}

func (d *Decider) showState(v game.TurnView) {
	s := game.BuildStateMsg(v, v.Seat)
	d.showPlayer("You", s.You)
	d.showPlayer("Opponent", s.Opponent)
	d.term.Printf("Fate deck: %d cards\n", s.FateDeckSize)
}

func (d *Decider) showPlayer(label string, p game.PlayerStateMsg) {
	d.term.Printf("%s (%s): %d/%d HP, %d spirits", label, p.Name, p.HP, p.MaxHP, len(p.Spirits))
	if len(p.Statuses) > 0 {
		d.term.Printf(" [%s]", strings.Join(p.Statuses, ", "))
	}
	d.term.Printf("\n")
}

func (d *Decider) list(kinds []game.Spirit) {
	for i, k := range kinds {
		d.term.Printf("  %d) %s\n", i+1, game.DisplayName(k, false))
	}
}

func (d *Decider) ChooseAction(ctx context.Context, v game.TurnView) (game.Action, error) {
	d.term.Printf("\n== %s, your move ==\n", v.Self.Name)
	d.showState(v)
	d.list(v.Self.Spirits)
	d.term.Printf("  0) Draw a fate card\n")
	n, err := d.term.Number(ctx, "> ", 0, len(v.Self.Spirits))
	if err != nil {
		return game.Action{}, err
	}
	if n == 0 {
		return game.DrawFate(), nil
	}
	return game.UseSpirit(n - 1), nil
}

func (d *Decider) ChooseTarget(ctx context.Context, v game.TurnView) (game.Target, error) {
	d.term.Printf("Aim the fate card at:\n  1) %s\n  2) Yourself\n", v.Opponent.Name)
	n, err := d.term.Number(ctx, "> ", 1, 2)
	if err != nil {
		return game.TargetOpponent, err
	}
	if n == 2 {
		return game.TargetSelf, nil
	}
	return game.TargetOpponent, nil
}

func (d *Decider) ChooseStealTarget(ctx context.Context, _ game.TurnView, candidates []game.Spirit) (int, error) {
	d.term.Printf("Pick a spirit to steal:\n")
	d.list(candidates)
	n, err := d.term.Number(ctx, "> ", 1, len(candidates))
	return n - 1, err
}

func (d *Decider) ChooseForcedUse(ctx context.Context, _ game.TurnView, candidates []game.Spirit) (int, bool, error) {
	d.term.Printf("Pick a spirit your opponent must use:\n")
	d.list(candidates)
	d.term.Printf("  0) None\n")
	n, err := d.term.Number(ctx, "> ", 0, len(candidates))
	if err != nil || n == 0 {
		return 0, false, err
	}
	return n - 1, true, nil
}

func (d *Decider) ChoosePeekPosition(ctx context.Context, _ game.TurnView, deckSize int) (int, error) {
	d.term.Printf("Which fate card do you want to see? (1-%d)\n", deckSize)
	return d.term.Number(ctx, "> ", 1, deckSize)
}
