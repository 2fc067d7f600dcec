package stats

import (
	"testing"

	"github.com/bwwq/fate-roulette/game"
)

func TestRecorder_TalliesOwnSeat(t *testing.T) {
	r := NewRecorder(0)
	events := []game.Event{
		{Type: game.EventSpiritUsed, Seat: 0, Item: "CREATION"},
		{Type: game.EventSpiritUsed, Seat: 0, Item: game.HiddenLabel},
		{Type: game.EventSpiritUsed, Seat: 0, Item: game.HiddenLabel},
		{Type: game.EventSpiritUsed, Seat: 1, Item: "RADIO"},
		{Type: game.EventCardDrawn, Seat: 0, Card: game.Backlash},
		{Type: game.EventCardDrawn, Seat: 1, Card: game.TheVoid},
		{Type: game.EventDamageDealt, Seat: 1, Other: 0, Amount: 2},
		{Type: game.EventDamageDealt, Seat: 0, Other: 1, Amount: 1},
		{Type: game.EventDamageDealt, Seat: 0, Other: 0, Amount: 1},
	}
	for _, ev := range events {
		r.Emit(ev)
	}

	got := r.Tally()
	if got.SpiritUses["CREATION"] != 1 || got.SpiritUses[game.HiddenLabel] != 2 || got.SpiritUses["RADIO"] != 0 {
		t.Errorf("unexpected spirit uses %v", got.SpiritUses)
	}
	if got.FateDraws["BACKLASH"] != 1 || len(got.FateDraws) != 1 {
		t.Errorf("unexpected fate draws %v", got.FateDraws)
	}
	if got.DamageDealt != 3 || got.DamageTaken != 2 {
		t.Errorf("expected 3 dealt and 2 taken, got %d and %d", got.DamageDealt, got.DamageTaken)
	}
	if got.Games() != 0 {
		t.Errorf("expected no result before MatchOver, got %d games", got.Games())
	}
}

func TestRecorder_Result(t *testing.T) {
	won := NewRecorder(1)
	won.Emit(game.Event{Type: game.EventMatchOver, Seat: 1, Other: 0})
	if tl := won.Tally(); tl.Wins != 1 || tl.Losses != 0 {
		t.Errorf("expected a win, got %+v", tl)
	}

	lost := NewRecorder(0)
	lost.Emit(game.Event{Type: game.EventMatchOver, Seat: 1, Other: 0})
	if !lost.Finished() || lost.Won() {
		t.Error("expected a finished loss")
	}
	if tl := lost.Tally(); tl.Losses != 1 {
		t.Errorf("expected a loss, got %+v", tl)
	}
}

func TestTally_Add(t *testing.T) {
	a := NewTally()
	a.Wins = 1
	a.SpiritUses["PILLOW"] = 2

	var total Tally
	total.Add(a)
	total.Add(Tally{Losses: 2, DamageDealt: 3, SpiritUses: map[string]int{"PILLOW": 1}, FateDraws: map[string]int{"THE_VOID": 1}})

	if total.Games() != 3 || total.DamageDealt != 3 {
		t.Errorf("unexpected totals %+v", total)
	}
	if total.SpiritUses["PILLOW"] != 3 || total.FateDraws["THE_VOID"] != 1 {
		t.Errorf("unexpected maps %v %v", total.SpiritUses, total.FateDraws)
	}
}

func TestRecorder_SelfDamageCountsBothWays(t *testing.T) {
	r := NewRecorder(0)
	r.Emit(game.Event{Type: game.EventDamageDealt, Seat: 0, Other: 0, Amount: 2})

	got := r.Tally()
	if got.DamageDealt != 2 || got.DamageTaken != 2 {
		t.Errorf("expected 2 dealt and 2 taken, got %d and %d", got.DamageDealt, got.DamageTaken)
	}
}
