package spirit

import (
	"context"
	"testing"

	"github.com/bwwq/fate-roulette/game"
)

func TestAmuletAndMirrorSetStatus(t *testing.T) {
	m, _, _ := newTestMatch(t)
	alice := m.Players[0]

	use(t, m, alice, game.Amulet)
	use(t, m, alice, game.Mirror)

	if alice.Status.AmuletTurns != game.AmuletTurns {
		t.Errorf("expected %d barrier turns, got %d", game.AmuletTurns, alice.Status.AmuletTurns)
	}
	if !alice.Status.IsMirrored {
		t.Error("expected mirror to be up")
	}
}

func TestEraser_RemovesTwoAndReveals(t *testing.T) {
	m, _, d1 := newTestMatch(t)
	alice, bob := m.Players[0], m.Players[1]
	bob.Spirits = []game.Spirit{game.Amulet, game.Mirror, game.Creation}

	use(t, m, alice, game.Eraser)

	if len(bob.Spirits) != 1 {
		t.Fatalf("expected one spirit left, got %d", len(bob.Spirits))
	}
	removed := 0
	for _, ev := range d1.seen {
		if ev.Type != game.EventSpiritRemoved {
			continue
		}
		removed++
		if ev.Item == game.HiddenLabel {
			t.Error("expected erased hidden spirits to be revealed")
		}
	}
	if removed != 2 {
		t.Errorf("expected 2 removal events, got %d", removed)
	}
}

func TestEraser_EmptyHandIsNoop(t *testing.T) {
	m, _, _ := newTestMatch(t)
	use(t, m, m.Players[0], game.Eraser)
	if len(m.Players[1].Spirits) != 0 {
		t.Error("expected nothing to change")
	}
}

func TestGloves_StealsChosenSpirit(t *testing.T) {
	m, d0, _ := newTestMatch(t)
	alice, bob := m.Players[0], m.Players[1]
	bob.Spirits = []game.Spirit{game.Gloves, game.Pillow, game.Contract}
	d0.steal = 1

	use(t, m, alice, game.Gloves)

	if len(alice.Spirits) != 1 || alice.Spirits[0] != game.Contract {
		t.Errorf("expected Alice to steal CONTRACT, got %v", alice.Spirits)
	}
	if bob.Has(game.Contract) || !bob.Has(game.Gloves) {
		t.Errorf("expected Bob to keep only gloves and pillow, got %v", bob.Spirits)
	}
}

func TestGloves_FullHandIsNoop(t *testing.T) {
	m, d0, _ := newTestMatch(t)
	alice, bob := m.Players[0], m.Players[1]
	alice.Spirits = []game.Spirit{game.Creation, game.Creation, game.Creation, game.Creation, game.Creation}
	bob.Spirits = []game.Spirit{game.Pillow}

	if err := (&GlovesSpirit{}).Apply(context.Background(), m, alice, bob); err != nil {
		t.Fatal(err)
	}
	if len(d0.asked) != 0 {
		t.Errorf("expected no steal prompt, got %v", d0.asked)
	}
	if !bob.Has(game.Pillow) {
		t.Error("expected Bob to keep his pillow")
	}
}

func TestRadio_ForcedGlovesStealsForChooser(t *testing.T) {
	m, d0, d1 := newTestMatch(t)
	alice, bob := m.Players[0], m.Players[1]
	alice.Spirits = []game.Spirit{game.Pillow}
	bob.Spirits = []game.Spirit{game.Gloves}
	d0.force, d0.forceOK = 0, true
	d0.steal = 0

	use(t, m, alice, game.Radio)

	if len(d1.asked) != 0 {
		t.Errorf("expected Bob never to be asked, got %v", d1.asked)
	}
	if len(d0.asked) != 2 || d0.asked[0] != "force" || d0.asked[1] != "steal" {
		t.Errorf("expected Alice to pick the forced spirit and the steal, got %v", d0.asked)
	}
	if !bob.Has(game.Pillow) || alice.Has(game.Pillow) {
		t.Errorf("expected forced gloves to move the pillow to Bob, alice=%v bob=%v", alice.Spirits, bob.Spirits)
	}
	if m.DecisionMaker(bob) != bob {
		t.Error("expected decision authority to reset")
	}
}

func TestRadio_Decline(t *testing.T) {
	m, d0, _ := newTestMatch(t)
	bob := m.Players[1]
	bob.Spirits = []game.Spirit{game.Contract}
	d0.forceOK = false

	use(t, m, m.Players[0], game.Radio)

	if !bob.Has(game.Contract) || bob.HP != game.InitialHP {
		t.Error("expected declining to leave Bob untouched")
	}
}

func TestRadio_ForcedContractHurtsOwner(t *testing.T) {
	m, d0, _ := newTestMatch(t)
	bob := m.Players[1]
	bob.Spirits = []game.Spirit{game.Contract}
	d0.force, d0.forceOK = 0, true

	use(t, m, m.Players[0], game.Radio)

	if bob.HP != game.InitialHP-game.ContractSelfDamage {
		t.Errorf("expected Bob to pay the contract, got HP %d", bob.HP)
	}
	if !bob.Status.HasContract {
		t.Error("expected Bob to hold the contract")
	}
}

func TestHandcuffs_BlockedByPillowImmunity(t *testing.T) {
	m, _, _ := newTestMatch(t)
	alice, bob := m.Players[0], m.Players[1]
	bob.Status.PillowImmunity = 1

	use(t, m, alice, game.Handcuffs)

	if bob.Status.IsHandcuffed || len(bob.Spirits) != 0 {
		t.Error("expected pillow immunity to block handcuffs and their compensation")
	}

	bob.Status.PillowImmunity = 0
	use(t, m, alice, game.Creation)
	use(t, m, alice, game.Handcuffs)
	if !bob.Status.IsHandcuffed || len(bob.Spirits) != 1 {
		t.Errorf("expected handcuffs with one compensation spirit, got cuffed=%v hand=%d", bob.Status.IsHandcuffed, len(bob.Spirits))
	}
}

func TestPillow(t *testing.T) {
	m, _, _ := newTestMatch(t)
	alice := m.Players[0]

	use(t, m, alice, game.Pillow)

	if len(alice.Spirits) != 3 {
		t.Errorf("expected 3 spirits, got %d", len(alice.Spirits))
	}
	if !alice.Status.SkipNextTurn || alice.Status.PillowImmunity != game.PillowImmunityTurns {
		t.Errorf("unexpected status %+v", alice.Status)
	}
}

func TestContract_KillsWhenTooWeak(t *testing.T) {
	m, _, _ := newTestMatch(t)
	alice := m.Players[0]
	alice.HP = 2

	use(t, m, alice, game.Contract)

	if !m.Finished || m.Winner != 1 {
		t.Error("expected signing at 2 HP to lose the match")
	}
	if alice.Status.HasContract {
		t.Error("expected no contract after dying")
	}
}

func TestPotions(t *testing.T) {
	m, _, _ := newTestMatch(t)
	alice := m.Players[0]

	use(t, m, alice, game.RedPotion)
	use(t, m, alice, game.RedPotion)
	if alice.Status.RedPotionBonus != 2 {
		t.Errorf("expected stacked bonus 2, got %d", alice.Status.RedPotionBonus)
	}

	alice.HP = game.MaxHP
	use(t, m, alice, game.GreenPotion)
	if alice.HP != game.MaxHP {
		t.Errorf("expected heal to cap at %d, got %d", game.MaxHP, alice.HP)
	}
}

type fixedRNG struct{ n int }

func (f fixedRNG) Intn(int) int                { return f.n }
func (f fixedRNG) Float64() float64            { return 0 }
func (f fixedRNG) Shuffle(int, func(i, j int)) {}

func TestPickWhiteOutcome(t *testing.T) {
	cases := []struct {
		roll       int
		heal, harm int
	}{
		{0, 1, 0},
		{48, 1, 0},
		{49, 0, 1},
		{97, 0, 1},
		{98, 2, 0},
		{99, 0, 2},
	}
	for _, c := range cases {
		o := pickWhiteOutcome(fixedRNG{c.roll})
		if o.heal != c.heal || o.harm != c.harm {
			t.Errorf("roll %d: expected heal=%d harm=%d, got %+v", c.roll, c.heal, c.harm, o)
		}
	}
}

func TestDeckTricks(t *testing.T) {
	m, d0, d1 := newTestMatch(t)
	alice := m.Players[0]
	m.FateDeck.Reset([]game.FateCard{game.Backlash, game.DivineBoon, game.TheVoid})
	d0.peek = 3

	use(t, m, alice, game.MagnifyingGlass)
	use(t, m, alice, game.Telephone)
	use(t, m, alice, game.Shuffler)
	use(t, m, alice, game.Mushroom)

	var peeks []game.Event
	for _, ev := range d0.seen {
		if ev.Type == game.EventCardPeeked {
			peeks = append(peeks, ev)
		}
	}
	if len(peeks) != 2 || peeks[0].Card != game.Backlash || peeks[1].Card != game.TheVoid || peeks[1].Position != 3 {
		t.Errorf("unexpected peeks %+v", peeks)
	}
	for _, ev := range d1.seen {
		if ev.Type == game.EventCardPeeked {
			t.Error("expected peeks to stay private")
		}
	}
	if !alice.Status.ShufflerEffect || !alice.Status.MushroomEffect {
		t.Error("expected both draw modifiers armed")
	}
	if m.FateDeck.Len() != 3 {
		t.Error("expected deck tricks not to draw")
	}
}
