package heuristic

import "github.com/bwwq/fate-roulette/game"

func init() {
	Register(game.Eraser, useEraser, forceHarmful)
	Register(game.Gloves, useGloves, forceGloves)
	Register(game.Creation, useCreation, forceCreation)
	Register(game.Pillow, usePillow, forcePillow)
	Register(game.Radio, useRadio, forceHarmful)
	Register(game.Handcuffs, nil, forceHarmful)
	Register(game.RemoteControl, nil, forceHarmful)
}

// forceHarmful rejects kinds that would act against the chooser.
func forceHarmful(Situation) (float64, bool) { return -200, true }

func useEraser(s Situation) (float64, bool) {
	return float64(len(s.Opponent.Spirits)) * 25, true
}

// useGloves is worth something only with room to take a stealable spirit.
func useGloves(s Situation) (float64, bool) {
	stealable := countExcept(s.Opponent.Spirits, game.Gloves)
	if stealable > 0 && len(s.Self.Spirits) < game.MaxSpirits {
		return 35 + float64(stealable)*5, true
	}
	return 0, true
}

// forceGloves: the opponent's gloves would steal from the chooser, so
// they are only safe to force when the chooser holds nothing else.
func forceGloves(s Situation) (float64, bool) {
	others := countExcept(s.Self.Spirits, game.Gloves)
	if others == 0 {
		return 60, true
	}
	return -100 * float64(others), true
}

func useCreation(s Situation) (float64, bool) {
	return float64(game.MaxSpirits-len(s.Self.Spirits)) * 15, true
}

// forceCreation wastes the draw when the opponent's hand is full.
func forceCreation(s Situation) (float64, bool) {
	if len(s.Opponent.Spirits) >= game.MaxSpirits {
		return 70, true
	}
	return 0, false
}

// usePillow refills a thin hand; less attractive against a healthy opponent.
func usePillow(s Situation) (float64, bool) {
	if len(s.Self.Spirits) <= 2 {
		return 80 - float64(s.Opponent.HP)*5, true
	}
	return 0, false
}

// forcePillow makes the opponent skip a turn.
func forcePillow(Situation) (float64, bool) { return 150, true }

func useRadio(s Situation) (float64, bool) {
	if len(s.Opponent.Spirits) > 0 {
		return 50, true
	}
	return 0, false
}
