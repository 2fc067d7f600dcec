package game

// takeDamage runs the barrier and reflection modifiers and returns the net
// damage. HP never drops below 0, but the returned amount is not clamped.
func (m *Match) takeDamage(p *Player, amount int, reflected bool) int {
	if amount <= 0 {
		return 0
	}
	final := amount
	if p.Status.AmuletTurns > 0 {
		if amount > 1 {
			final = amount * 2
			p.Status.AmuletTurns = 0
			m.Emit(Event{Type: EventStatusExpired, Seat: p.Seat, Other: NoSeat, Item: Amulet.String(), Status: StatusBarrier, Amount: final, Revealed: true, Reason: "shattered", Audience: Everyone})
		} else {
			final = 0
			m.Emit(Event{Type: EventDamageAbsorbed, Seat: p.Seat, Other: NoSeat, Item: Amulet.String(), Amount: amount, Revealed: true, Audience: Everyone})
		}
	}
	if reflected {
		final += MirrorReflectBonus
	}
	p.HP -= final
	if p.HP < 0 {
		p.HP = 0
	}
	return final
}

// Damage deals amount to victim through the full pipeline: modifiers,
// spirit compensation for lost HP and the vitals check. attacker may be
// nil for self-inflicted damage. Returns the net damage, which also sets
// the compensation even when it exceeds the HP left.
func (m *Match) Damage(victim, attacker *Player, amount int, reflected bool) int {
	if m.Finished {
		return 0
	}
	lost := m.takeDamage(victim, amount, reflected)
	if lost <= 0 {
		return 0
	}
	other := NoSeat
	if attacker != nil {
		other = attacker.Seat
	}
	m.Emit(Event{Type: EventDamageDealt, Seat: victim.Seat, Other: other, Amount: lost, Audience: Everyone})
	m.DrawSpirits(victim, HPLossSpiritFactor*lost)
	m.checkVitals(victim)
	return lost
}

// Heal restores up to amount HP, capped at MaxHP, and returns the gain.
func (m *Match) Heal(p *Player, amount int) int {
	gained := p.heal(amount)
	m.Emit(Event{Type: EventHealed, Seat: p.Seat, Other: NoSeat, Amount: gained, Audience: Everyone})
	return gained
}

// DrawSpirits deals n spirits to p from the shared deck. Draws that would
// overflow the hand are lost. Returns how many were kept.
func (m *Match) DrawSpirits(p *Player, n int) int {
	kept := 0
	for i := 0; i < n; i++ {
		kind, refilled := m.SpiritDeck.Draw()
		if refilled {
			m.Emit(Event{Type: EventDeckRegenerated, Seat: NoSeat, Other: NoSeat, Reason: "spirits", Amount: m.SpiritDeck.Len() + 1, Audience: Everyone})
		}
		if m.GiveSpirit(p, kind, NoSeat) {
			kept++
		}
	}
	return kept
}

// GiveSpirit puts kind into p's hand. from is the seat it was taken from,
// or NoSeat.
func (m *Match) GiveSpirit(p *Player, kind Spirit, from int) bool {
	if !p.add(kind) {
		m.Emit(Event{Type: EventHandFull, Seat: p.Seat, Other: from, Amount: MaxSpirits, Audience: Everyone})
		return false
	}
	m.Emit(Event{Type: EventSpiritGained, Seat: p.Seat, Other: from, Item: Label(kind, false), Audience: Everyone})
	return true
}

// TakeSpirit removes the first copy of kind from p's hand.
func (m *Match) TakeSpirit(p *Player, kind Spirit) bool {
	return p.remove(kind)
}

// checkVitals ends the match when p is out of HP, unless an unspent
// contract grants a last stand: HP 1, three spirits and the next turn.
func (m *Match) checkVitals(p *Player) {
	if m.Finished || p.HP > 0 {
		return
	}
	if p.Status.HasContract && !p.Status.LastStand {
		p.Status.LastStand = true
		p.HP = 1
		m.finalTurn[p.Seat] = false
		m.Emit(Event{Type: EventLastStand, Seat: p.Seat, Other: NoSeat, Item: Contract.String(), Revealed: true, Audience: Everyone})
		m.DrawSpirits(p, LastStandSpirits)
		m.GrantExtraTurn(p)
		return
	}
	m.finish(1 - p.Seat)
}
