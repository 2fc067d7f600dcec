package game

// Rule constants.
const (
	InitialHP            = 4
	MaxHP                = 5
	MaxSpirits           = 5
	InitialSpirits       = 2
	HPLossSpiritFactor   = 2
	AmuletTurns          = 2
	PillowImmunityTurns  = 3
	ContractSelfDamage   = 2
	LastStandSpirits     = 3
	SecondPlayerBonus    = 1
	WhitePotionHeal      = 3
	WhitePotionSelfHarm  = 1
	EraserRemoveCount    = 2
	CreationSpiritsDrawn = 2
	RedPotionBonus       = 1
	MirrorReflectBonus   = 1
)

// Status holds the per-player duel flags.
type Status struct {
	// AmuletTurns counts the player's own turn starts left on the barrier; 0 = inactive.
	AmuletTurns int
	// IsMirrored redirects the next fate card aimed at this player.
	IsMirrored bool
	// IsHandcuffed blocks spirit use for the player's next turn. Cleared when the opponent's turn starts.
	IsHandcuffed bool
	// PillowImmunity counts the player's own turn starts left during which handcuffs cannot land.
	PillowImmunity int
	SkipNextTurn   bool
	HasContract    bool
	// LastStand is set once the contract has saved the player; the next end of their turn loses the match.
	LastStand bool
	// RedPotionBonus is added to the next damaging fate card this player causes.
	RedPotionBonus int
	// RemoteControlActive makes the opponent draw a fate card on themselves at the end of this player's turn.
	RemoteControlActive bool
	// MushroomEffect and ShufflerEffect modify this player's next fate draw.
	MushroomEffect bool
	ShufflerEffect bool
}

// Player is one seat of a duel.
type Player struct {
	Seat    int
	Name    string
	HP      int
	MaxHP   int
	Spirits []Spirit
	Status  Status
}

// NewPlayer creates a player at full starting health with an empty hand.
func NewPlayer(seat int, name string) *Player {
	p := &Player{Seat: seat, Name: name}
	p.reset()
	return p
}

func (p *Player) reset() {
	p.HP = InitialHP
	p.MaxHP = MaxHP
	p.Spirits = p.Spirits[:0]
	p.Status = Status{}
}

// HandFull reports whether the hand holds MaxSpirits items.
func (p *Player) HandFull() bool {
	return len(p.Spirits) >= MaxSpirits
}

// Has reports whether the hand contains kind.
func (p *Player) Has(kind Spirit) bool {
	return p.Count(kind) > 0
}

// Count returns how many copies of kind the hand holds.
func (p *Player) Count(kind Spirit) int {
	n := 0
	for _, s := range p.Spirits {
		if s == kind {
			n++
		}
	}
	return n
}

func (p *Player) add(kind Spirit) bool {
	if p.HandFull() {
		return false
	}
	p.Spirits = append(p.Spirits, kind)
	return true
}

func (p *Player) removeAt(i int) Spirit {
	kind := p.Spirits[i]
	p.Spirits = append(p.Spirits[:i], p.Spirits[i+1:]...)
	return kind
}

// remove drops the first copy of kind.
func (p *Player) remove(kind Spirit) bool {
	for i, s := range p.Spirits {
		if s == kind {
			p.removeAt(i)
			return true
		}
	}
	return false
}

func (p *Player) heal(amount int) int {
	before := p.HP
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	return p.HP - before
}
