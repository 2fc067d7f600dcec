package ai

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/bwwq/fate-roulette/ai/heuristic"
	"github.com/bwwq/fate-roulette/game"
)

func params(seed int64) Params {
	return Params{Seat: 1, Name: "test", RNG: rand.New(rand.NewSource(seed))}
}

func turnView(selfHP, oppHP int, hand ...game.Spirit) game.TurnView {
	return game.TurnView{
		Seat:     1,
		Self:     game.PlayerView{Seat: 1, HP: selfHP, MaxHP: game.MaxHP, Spirits: hand},
		Opponent: game.PlayerView{Seat: 0, HP: oppHP, MaxHP: game.MaxHP},
	}
}

func TestNew(t *testing.T) {
	for _, tier := range []Tier{TierReactive, TierScoring, TierTracking} {
		if d, err := New(tier, params(1)); err != nil || d == nil {
			t.Errorf("New(%s): %v", tier, err)
		}
	}
	if _, err := New(Tier(9), params(1)); err == nil {
		t.Error("expected an error for an unknown tier")
	}
}

func TestThinkHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := think(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("expected think to return immediately")
	}
}

func TestReactive_HandcuffedAlwaysDraws(t *testing.T) {
	r := NewReactive(params(2))
	v := turnView(4, 4, game.Creation, game.Radio)
	v.Self.Status.IsHandcuffed = true
	for i := 0; i < 100; i++ {
		act, err := r.ChooseAction(context.Background(), v)
		if err != nil {
			t.Fatal(err)
		}
		if act.Kind != game.ActionDrawFate {
			t.Fatal("expected a handcuffed AI to draw")
		}
	}
}

func TestReactive_MostlyTargetsOpponent(t *testing.T) {
	r := NewReactive(params(3))
	opp := 0
	for i := 0; i < 1000; i++ {
		tgt, _ := r.ChooseTarget(context.Background(), game.TurnView{})
		if tgt == game.TargetOpponent {
			opp++
		}
	}
	if opp < 850 || opp > 950 {
		t.Errorf("expected about 900 opponent targets, got %d", opp)
	}
}

func TestScoring_Tendency(t *testing.T) {
	s := NewScoring(params(1))
	cases := []struct {
		self, opp int
		want      heuristic.Tendency
	}{
		{2, 2, heuristic.Defensive},
		{4, 1, heuristic.Aggressive},
		{4, 4, heuristic.Stable},
	}
	for _, c := range cases {
		if got := s.Tendency(turnView(c.self, c.opp)); got != c.want {
			t.Errorf("hp %d vs %d: expected %s, got %s", c.self, c.opp, c.want, got)
		}
	}
}

func TestScoring_UsesBestSpirit(t *testing.T) {
	s := NewScoring(params(1))
	act, err := s.ChooseAction(context.Background(), turnView(2, 4, game.Shuffler, game.GreenPotion))
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != game.ActionUseSpirit || act.Index != 1 {
		t.Errorf("expected to use the green potion, got %+v", act)
	}
}

func TestScoring_DrawsBelowThreshold(t *testing.T) {
	s := NewScoring(params(1))
	act, _ := s.ChooseAction(context.Background(), turnView(4, 4, game.Shuffler, game.Telephone))
	if act.Kind != game.ActionDrawFate {
		t.Errorf("expected to draw, got %+v", act)
	}
}

func TestScoring_RepeatPenalty(t *testing.T) {
	s := NewScoring(params(1))
	v := turnView(4, 1, game.Handcuffs)
	if score := s.Score(game.Handcuffs, v, heuristic.Aggressive); score != 45 {
		t.Errorf("expected 30*1.5=45, got %v", score)
	}
	v.LastUsed = game.Handcuffs
	if score := s.Score(game.Handcuffs, v, heuristic.Aggressive); score != repeatPenalty {
		t.Errorf("expected repeat penalty, got %v", score)
	}
	act, _ := s.ChooseAction(context.Background(), v)
	if act.Kind != game.ActionDrawFate {
		t.Errorf("expected to draw instead of repeating, got %+v", act)
	}
}

func TestScoring_PeekedDamageFavoursRedPotion(t *testing.T) {
	s := NewScoring(params(1))
	s.Observe(game.Event{Type: game.EventCardPeeked, Seat: 1, Card: game.Backlash, Position: 1, Audience: 1})
	if s.KnownNext() != game.Backlash {
		t.Fatalf("expected BACKLASH remembered, got %s", s.KnownNext())
	}
	act, _ := s.ChooseAction(context.Background(), turnView(4, 4, game.Shuffler, game.RedPotion))
	if act.Kind != game.ActionUseSpirit || act.Index != 1 {
		t.Errorf("expected to use the red potion, got %+v", act)
	}
	tgt, _ := s.ChooseTarget(context.Background(), game.TurnView{})
	if tgt != game.TargetOpponent {
		t.Error("expected to aim damage at the opponent")
	}

	s.Observe(game.Event{Type: game.EventCardDrawn, Seat: 0, Card: game.Backlash})
	if s.KnownNext() != game.FateNone {
		t.Error("expected a draw to clear the remembered card")
	}
}

func TestScoring_TargetsSelfOnKnownBoon(t *testing.T) {
	s := NewScoring(params(1))
	s.Observe(game.Event{Type: game.EventCardPeeked, Seat: 1, Card: game.DivineBoon, Position: 1, Audience: 1})
	if tgt, _ := s.ChooseTarget(context.Background(), game.TurnView{}); tgt != game.TargetSelf {
		t.Error("expected to aim a known boon at self")
	}
	s.Observe(game.Event{Type: game.EventTurnStarted, Seat: 1})
	if tgt, _ := s.ChooseTarget(context.Background(), game.TurnView{}); tgt != game.TargetOpponent {
		t.Error("expected the memory to reset at turn start")
	}
}

func TestScoring_IgnoresOtherSeatsPeeks(t *testing.T) {
	s := NewScoring(params(1))
	s.Observe(game.Event{Type: game.EventCardPeeked, Seat: 0, Card: game.DivineBoon, Position: 1, Audience: 0})
	s.Observe(game.Event{Type: game.EventCardPeeked, Seat: 1, Card: game.DivineBoon, Position: 2, Audience: 1})
	if s.KnownNext() != game.FateNone {
		t.Errorf("expected nothing remembered, got %s", s.KnownNext())
	}
}

func TestScoring_StealPriority(t *testing.T) {
	s := NewScoring(params(1))
	i, _ := s.ChooseStealTarget(context.Background(), game.TurnView{}, []game.Spirit{game.Mushroom, game.Pillow, game.RedPotion})
	if i != 2 {
		t.Errorf("expected RED_POTION at 2, got %d", i)
	}
	i, _ = s.ChooseStealTarget(context.Background(), game.TurnView{}, []game.Spirit{game.Telephone})
	if i != 0 {
		t.Errorf("expected the only candidate, got %d", i)
	}
}

func TestScoring_ForcedUse(t *testing.T) {
	s := NewScoring(params(1))
	v := turnView(4, 4, game.Radio)

	if _, ok, _ := s.ChooseForcedUse(context.Background(), v, []game.Spirit{game.Eraser, game.Amulet, game.Shuffler}); ok {
		t.Error("expected to decline when nothing reaches the floor")
	}
	i, ok, _ := s.ChooseForcedUse(context.Background(), v, []game.Spirit{game.Shuffler, game.Pillow, game.Contract})
	if !ok || i != 2 {
		t.Errorf("expected to force the contract, got %d %v", i, ok)
	}
}

func TestTracking_TendencyFollowsDeck(t *testing.T) {
	tr := NewTracking(params(1))
	tr.TrackDeck([]game.FateCard{game.DivinePunishment, game.DivinePunishment, game.Backlash, game.DivineBoon})

	if got := tr.Tendency(turnView(4, 4)); got != heuristic.Defensive {
		t.Errorf("expected defensive against a damaging deck, got %s", got)
	}
	if got := tr.Tendency(turnView(4, 1)); got != heuristic.Aggressive {
		t.Errorf("expected aggressive to stay aggressive, got %s", got)
	}

	for _, c := range []game.FateCard{game.DivinePunishment, game.DivinePunishment, game.Backlash} {
		tr.Observe(game.Event{Type: game.EventCardDrawn, Seat: 0, Card: c})
	}
	if comp := tr.Composition(); len(comp) != 1 || comp[game.DivineBoon] != 1 {
		t.Fatalf("unexpected composition %v", comp)
	}
	if got := tr.Tendency(turnView(4, 4)); got != heuristic.Aggressive {
		t.Errorf("expected aggressive against a harmless deck, got %s", got)
	}
	if got := tr.Tendency(turnView(1, 4)); got != heuristic.Defensive {
		t.Errorf("expected low hp to stay defensive, got %s", got)
	}
}

func TestTracking_UnknownDrawIgnored(t *testing.T) {
	tr := NewTracking(params(1))
	tr.TrackDeck([]game.FateCard{game.TheVoid})
	tr.Observe(game.Event{Type: game.EventCardDrawn, Card: game.Backlash})
	if comp := tr.Composition(); comp[game.TheVoid] != 1 || len(comp) != 1 {
		t.Errorf("unexpected composition %v", comp)
	}
}
