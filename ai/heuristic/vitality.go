package heuristic

import "github.com/bwwq/fate-roulette/game"

func init() {
	Register(game.GreenPotion, useGreenPotion, forceGreenPotion)
	Register(game.WhitePotion, useWhitePotion, forceWhitePotion)
	Register(game.Contract, useContract, forceContract)
}

// useGreenPotion scales with missing HP.
func useGreenPotion(s Situation) (float64, bool) {
	return float64(s.Self.MaxHP-s.Self.HP) * 40, true
}

// forceGreenPotion wastes the opponent's heal when they are already full.
func forceGreenPotion(s Situation) (float64, bool) {
	if s.Opponent.HP >= s.Opponent.MaxHP {
		return 80, true
	}
	return 0, false
}

// useWhitePotion is a small gamble, suicidal at 1 HP.
func useWhitePotion(s Situation) (float64, bool) {
	if s.Self.HP > 1 {
		return 15, true
	}
	return -200, true
}

func forceWhitePotion(s Situation) (float64, bool) {
	if s.Opponent.HP <= 2 {
		return 120, true
	}
	return 30, true
}

// useContract is worth most when close to death. Holding a contract
// already leaves the default score.
func useContract(s Situation) (float64, bool) {
	if s.Self.Status.HasContract {
		return 0, false
	}
	switch {
	case s.Self.HP <= 2:
		return 150, true
	case s.Self.HP == 3:
		return 50, true
	default:
		return 0, true
	}
}

// forceContract always costs the opponent 2 HP.
func forceContract(Situation) (float64, bool) { return 200, true }
