package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/bwwq/fate-roulette/ai"
	"github.com/bwwq/fate-roulette/game"
	"github.com/bwwq/fate-roulette/lobby"
	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/storage"
)

// Console is the terminal front end of a Lobby.
type Console struct {
	term    *Terminal
	lobby   *lobby.Lobby
	spirits game.SpiritProvider
	profile string
}

// New returns a Console playing as storage.LocalProfile.
func New(l *lobby.Lobby, spirits game.SpiritProvider, in io.Reader, out io.Writer) *Console {
	return &Console{
		term:    NewTerminal(in, out),
		lobby:   l,
		spirits: spirits,
		profile: storage.LocalProfile,
	}
}

// Run shows the main menu until the player quits, the input ends or ctx
// is done.
func (c *Console) Run(ctx context.Context) error {
	c.term.Printf("Fate Roulette\n")
	for {
		c.term.Printf("\n1) Play against the AI\n2) Hot-seat duel\n3) Statistics\n4) Rules\n0) Quit\n")
		n, err := c.term.Number(ctx, "> ", 0, 4)
		if err != nil {
			return quiet(err)
		}
		switch n {
		case 0:
			c.term.Printf("Goodbye.\n")
			return nil
		case 1:
			err = c.vsAI(ctx)
		case 2:
			err = c.hotSeat(ctx)
		case 3:
			c.showStats(ctx)
		case 4:
			c.showRules()
		}
		if err != nil {
			return quiet(err)
		}
	}
}

// quiet turns running out of input into a clean exit.
func quiet(err error) error {
	if IsEOF(err) {
		return nil
	}
	return err
}

func (c *Console) vsAI(ctx context.Context) error {
	unlocked := c.lobby.Progress(ctx, c.profile)
	c.term.Printf("Choose your opponent:\n")
	tiers := []ai.Tier{ai.TierReactive, ai.TierScoring, ai.TierTracking}
	for _, t := range tiers {
		lock := ""
		if !lobby.Allowed(unlocked, t) {
			lock = " (locked)"
		}
		c.term.Printf("  %d) %s%s\n", int(t), t, lock)
	}
	c.term.Printf("  0) Back\n")
	n, err := c.term.Number(ctx, "> ", 0, len(tiers))
	if err != nil || n == 0 {
		return err
	}
	tier := ai.Tier(n)
	if !lobby.Allowed(unlocked, tier) {
		c.term.Printf("That difficulty is locked. Beat %s first.\n", ai.Tier(unlocked))
		return nil
	}
	name, err := c.term.Line(ctx, "Your name: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "Player"
	}

	opponent := lobby.OpponentProfile(c.lobby.Config(), tier).Name
	names := [2]string{}
	names[lobby.HumanSeat] = name
	names[1-lobby.HumanSeat] = opponent
	res, err := c.lobby.Play(ctx, lobby.Request{
		Profile: c.profile,
		Name:    name,
		Tier:    tier,
		Human:   NewDecider(c.term),
		Sinks:   []game.EventSink{NewRenderer(c.term, lobby.HumanSeat, names)},
	})
	if err != nil {
		if errors.Is(err, matcherrors.ErrLevelLocked) {
			c.term.Printf("That difficulty is locked.\n")
			return nil
		}
		return err
	}
	if res.HumanWon {
		c.term.Printf("\nYou win in %d rounds!\n", res.Rounds)
	} else {
		c.term.Printf("\n%s wins in %d rounds.\n", opponent, res.Rounds)
	}
	if res.Unlocked > unlocked && res.Unlocked <= int(ai.TierTracking) {
		c.term.Printf("%s is now unlocked.\n", ai.Tier(res.Unlocked))
	}
	return nil
}

func (c *Console) hotSeat(ctx context.Context) error {
	var names [2]string
	for i := range names {
		name, err := c.term.Line(ctx, fmt.Sprintf("Name of player %d: ", i+1))
		if err != nil {
			return err
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		names[i] = name
	}
	d := NewDecider(c.term)
	res, err := c.lobby.HotSeat(ctx, names, [2]game.Decider{d, d}, NewRenderer(c.term, game.Everyone, names))
	if err != nil {
		return err
	}
	c.term.Printf("\n%s wins in %d rounds!\n", names[res.Winner], res.Rounds)
	return nil
}

func (c *Console) showStats(ctx context.Context) {
	t, err := c.lobby.Stats(ctx, c.profile)
	if err != nil {
		if !errors.Is(err, matcherrors.ErrNotConfigured) {
			slog.Warn("failed to load stats", "tag", "console", "err", err)
		}
		c.term.Printf("No statistics available.\n")
		return
	}
	c.term.Printf("Games: %d  Wins: %d  Losses: %d\n", t.Games(), t.Wins, t.Losses)
	c.term.Printf("Damage dealt: %d  Damage taken: %d\n", t.DamageDealt, t.DamageTaken)
	printCounts(c.term, "Spirits used", t.SpiritUses, game.ItemName)
	printCounts(c.term, "Fate cards drawn", t.FateDraws, fateName)
}

func fateName(id string) string {
	for _, c := range game.AllFateCards() {
		if c.String() == id {
			return c.Name()
		}
	}
	return id
}

func printCounts(term *Terminal, title string, counts map[string]int, name func(string) string) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	term.Printf("%s:\n", title)
	for _, k := range keys {
		term.Printf("  %-20s %d\n", name(k), counts[k])
	}
}

func (c *Console) showRules() {
	c.term.Printf("Each turn, use any number of spirits, then draw a fate card and aim it at\n")
	c.term.Printf("your opponent or yourself. Bring your opponent to 0 HP to win.\n\n")
	c.term.Printf("Fate cards:\n")
	for _, f := range game.AllFateCards() {
		c.term.Printf("  %-18s %s\n", f.Name(), f.Description())
	}
	c.term.Printf("\nSpirits:\n")
	for _, s := range c.spirits.AllSpirits() {
		c.term.Printf("  %-18s %s\n", s.Name, s.Description)
	}
}
