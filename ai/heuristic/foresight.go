package heuristic

import "github.com/bwwq/fate-roulette/game"

func init() {
	Register(game.MagnifyingGlass, useMagnifyingGlass, nil)
	Register(game.Amulet, useHidden, forceHidden)
	Register(game.Mirror, useHidden, forceHidden)
}

// useMagnifyingGlass is only worth it while the next card is unknown.
func useMagnifyingGlass(s Situation) (float64, bool) {
	if s.KnownNext == game.FateNone {
		return 80, true
	}
	return 0, false
}

// useHidden bets that a concealed spirit is defensive when that matters.
func useHidden(s Situation) (float64, bool) {
	if s.Tendency == Defensive {
		return 90, true
	}
	return 40, true
}

// forceHidden gambles that the concealed spirit would not help the chooser.
func forceHidden(Situation) (float64, bool) { return -50, true }
