package game

// FateCard is an entry of the shared fate deck.
type FateCard int

const (
	FateNone FateCard = iota
	DivinePunishment
	DivineBoon
	TheVoid
	Reincarnation
	Backlash
)

var allFateCards = []FateCard{DivinePunishment, DivineBoon, TheVoid, Reincarnation, Backlash}

// AllFateCards returns every fate card kind.
func AllFateCards() []FateCard {
	out := make([]FateCard, len(allFateCards))
	copy(out, allFateCards)
	return out
}

// String returns the protocol identifier for a FateCard.
func (c FateCard) String() string {
	switch c {
	case DivinePunishment:
		return "DIVINE_PUNISHMENT"
	case DivineBoon:
		return "DIVINE_BOON"
	case TheVoid:
		return "THE_VOID"
	case Reincarnation:
		return "REINCARNATION"
	case Backlash:
		return "BACKLASH"
	default:
		return "NONE"
	}
}

// Name returns the human-readable card name.
func (c FateCard) Name() string {
	switch c {
	case DivinePunishment:
		return "Divine Punishment"
	case DivineBoon:
		return "Divine Boon"
	case TheVoid:
		return "The Void"
	case Reincarnation:
		return "Reincarnation"
	case Backlash:
		return "Backlash"
	default:
		return "Unknown"
	}
}

// Description summarises the card effect.
func (c FateCard) Description() string {
	switch c {
	case DivinePunishment:
		return "Target takes 1 damage."
	case DivineBoon:
		return "Target gains one spirit."
	case TheVoid:
		return "Nothing happens. Chosen on yourself, you take another turn."
	case Reincarnation:
		return "Target draws and resolves another fate card on themselves."
	case Backlash:
		return "Target takes 1 damage, then takes the next turn if hurt."
	default:
		return ""
	}
}

// IsDamaging reports whether the card deals damage.
func (c FateCard) IsDamaging() bool {
	return c == DivinePunishment || c == Backlash
}
