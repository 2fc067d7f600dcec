package spirit

import (
	"context"
	"math/rand"
	"testing"

	"github.com/bwwq/fate-roulette/game"
)

// stubDecider answers every choice with fixed indices and records what it sees.
type stubDecider struct {
	steal   int
	force   int
	forceOK bool
	peek    int
	asked   []string
	seen    []game.Event
}

func (d *stubDecider) ChooseAction(context.Context, game.TurnView) (game.Action, error) {
	return game.DrawFate(), nil
}

func (d *stubDecider) ChooseTarget(context.Context, game.TurnView) (game.Target, error) {
	return game.TargetOpponent, nil
}

func (d *stubDecider) ChooseStealTarget(context.Context, game.TurnView, []game.Spirit) (int, error) {
	d.asked = append(d.asked, "steal")
	return d.steal, nil
}

func (d *stubDecider) ChooseForcedUse(context.Context, game.TurnView, []game.Spirit) (int, bool, error) {
	d.asked = append(d.asked, "force")
	return d.force, d.forceOK, nil
}

func (d *stubDecider) ChoosePeekPosition(context.Context, game.TurnView, int) (int, error) {
	d.asked = append(d.asked, "peek")
	return d.peek, nil
}

func (d *stubDecider) Observe(ev game.Event) { d.seen = append(d.seen, ev) }

func newTestMatch(t *testing.T) (*game.Match, *stubDecider, *stubDecider) {
	t.Helper()
	r := NewRegistry()
	RegisterAll(r)
	d0, d1 := &stubDecider{peek: 1}, &stubDecider{peek: 1}
	m := game.NewMatch("spirit-test",
		[2]*game.Player{game.NewPlayer(0, "Alice"), game.NewPlayer(1, "Bob")},
		[2]game.Decider{d0, d1},
		r,
		rand.New(rand.NewSource(11)),
	)
	return m, d0, d1
}

func use(t *testing.T, m *game.Match, p *game.Player, kind game.Spirit) {
	t.Helper()
	p.Spirits = append(p.Spirits, kind)
	if _, err := m.UseSpirit(context.Background(), p, len(p.Spirits)-1); err != nil {
		t.Fatalf("using %s: %v", kind, err)
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CreationSpirit{})

	def, ok := r.Spirit(game.Creation)
	if !ok {
		t.Fatal("expected to find CREATION in registry")
	}
	if def.Name != "Creation" {
		t.Errorf("expected Name='Creation', got %q", def.Name)
	}
	if def.Apply == nil {
		t.Error("expected Apply to be set")
	}
	if _, ok := r.Spirit(game.Radio); ok {
		t.Error("expected Spirit to return false for an unregistered kind")
	}
}

func TestRegisterAllCoversCatalog(t *testing.T) {
	r := NewRegistry()
	RegisterAll(r)

	if missing := r.Missing(); len(missing) != 0 {
		t.Errorf("expected every kind registered, missing %v", missing)
	}
	all := r.AllSpirits()
	if len(all) != len(game.AllSpirits()) {
		t.Fatalf("expected %d definitions, got %d", len(game.AllSpirits()), len(all))
	}
	if all[0].Kind != game.Amulet {
		t.Errorf("expected registration order to start with AMULET, got %s", all[0].Kind)
	}
	for _, def := range all {
		if def.Description == "" {
			t.Errorf("%s has no description", def.Kind)
		}
	}
}
