package game

// PlayerView is a snapshot of one seat. Spirits carry true kinds; callers
// presenting them to the other seat must project through Label.
type PlayerView struct {
	Seat    int
	Name    string
	HP      int
	MaxHP   int
	Spirits []Spirit
	Status  Status
}

// TurnView is everything a decider may consult.
type TurnView struct {
	Seat     int
	Round    int
	Self     PlayerView
	Opponent PlayerView
	// LastUsed is the last spirit Self used this turn, or SpiritNone.
	LastUsed     Spirit
	FateDeckSize int
}

func viewOf(p *Player) PlayerView {
	hand := make([]Spirit, len(p.Spirits))
	copy(hand, p.Spirits)
	return PlayerView{
		Seat:    p.Seat,
		Name:    p.Name,
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Spirits: hand,
		Status:  p.Status,
	}
}

// View builds the decision view for seat.
func (m *Match) View(seat int) TurnView {
	p := m.Players[seat]
	return TurnView{
		Seat:         seat,
		Round:        m.Round,
		Self:         viewOf(p),
		Opponent:     viewOf(m.Opponent(p)),
		LastUsed:     m.lastUsed[seat],
		FateDeckSize: m.FateDeck.Len(),
	}
}

// SpiritMsg is one hand slot as sent to a client.
type SpiritMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerStateMsg is the client-facing representation of a seat.
type PlayerStateMsg struct {
	Name     string      `json:"name"`
	HP       int         `json:"hp"`
	MaxHP    int         `json:"maxHp"`
	Spirits  []SpiritMsg `json:"spirits"`
	Statuses []string    `json:"statuses"`
}

// StateMsg is the duel state as seen by one seat.
type StateMsg struct {
	You          PlayerStateMsg `json:"you"`
	Opponent     PlayerStateMsg `json:"opponent"`
	YourTurn     bool           `json:"yourTurn"`
	Round        int            `json:"round"`
	FateDeckSize int            `json:"fateDeckSize"`
}

// BuildPlayerState projects a seat view. Hidden spirits are concealed from
// both seats, their holder included.
func BuildPlayerState(v PlayerView) PlayerStateMsg {
	spirits := make([]SpiritMsg, len(v.Spirits))
	for i, s := range v.Spirits {
		spirits[i] = SpiritMsg{ID: Label(s, false), Name: DisplayName(s, false)}
	}
	return PlayerStateMsg{
		Name:     v.Name,
		HP:       v.HP,
		MaxHP:    v.MaxHP,
		Spirits:  spirits,
		Statuses: ActiveStatuses(v.Status),
	}
}

// BuildStateMsg projects a TurnView for its own seat.
func BuildStateMsg(v TurnView, current int) StateMsg {
	return StateMsg{
		You:          BuildPlayerState(v.Self),
		Opponent:     BuildPlayerState(v.Opponent),
		YourTurn:     current == v.Seat,
		Round:        v.Round,
		FateDeckSize: v.FateDeckSize,
	}
}

// ActiveStatuses lists the set flags. Barrier and reflection names do not
// say which hidden spirit caused them.
func ActiveStatuses(s Status) []string {
	var out []string
	if s.AmuletTurns > 0 {
		out = append(out, StatusBarrier.String())
	}
	if s.IsMirrored {
		out = append(out, StatusReflection.String())
	}
	if s.IsHandcuffed {
		out = append(out, StatusHandcuffed.String())
	}
	if s.PillowImmunity > 0 {
		out = append(out, StatusPillowImmunity.String())
	}
	if s.SkipNextTurn {
		out = append(out, StatusSkipTurn.String())
	}
	if s.HasContract {
		out = append(out, StatusContract.String())
	}
	if s.RedPotionBonus > 0 {
		out = append(out, StatusRedPotion.String())
	}
	if s.RemoteControlActive {
		out = append(out, StatusRemoteControl.String())
	}
	if s.MushroomEffect {
		out = append(out, StatusMushroom.String())
	}
	if s.ShufflerEffect {
		out = append(out, StatusShuffler.String())
	}
	if s.LastStand {
		out = append(out, "last_stand")
	}
	return out
}
