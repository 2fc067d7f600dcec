package heuristic

import "github.com/bwwq/fate-roulette/game"

// StealPriority is the order in which the scoring AI takes spirits.
var StealPriority = []game.Spirit{
	game.Contract, game.RedPotion, game.Pillow, game.Eraser, game.RemoteControl,
	game.Radio, game.Mirror, game.Amulet, game.GreenPotion, game.MagnifyingGlass,
	game.Handcuffs, game.Creation, game.Shuffler, game.WhitePotion, game.Mushroom,
}

// PickSteal returns the index in candidates of the highest-priority kind,
// or -1 when none is listed.
func PickSteal(candidates []game.Spirit) int {
	for _, want := range StealPriority {
		for i, c := range candidates {
			if c == want {
				return i
			}
		}
	}
	return -1
}

// countExcept counts hand entries other than kind.
func countExcept(hand []game.Spirit, kind game.Spirit) int {
	n := 0
	for _, s := range hand {
		if s != kind {
			n++
		}
	}
	return n
}

// DamageRatio is the share of damaging cards in a deck composition.
// ok=false for an empty composition.
func DamageRatio(composition map[game.FateCard]int) (float64, bool) {
	total := 0
	for _, n := range composition {
		total += n
	}
	if total == 0 {
		return 0, false
	}
	damaging := composition[game.DivinePunishment] + composition[game.Backlash]
	return float64(damaging) / float64(total), true
}
