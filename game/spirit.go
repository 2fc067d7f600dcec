package game

// Spirit is a single-use item kind held in a player's hand.
type Spirit int

const (
	SpiritNone Spirit = iota
	Amulet
	Mirror
	RemoteControl
	Eraser
	Gloves
	GreenPotion
	Creation
	Mushroom
	WhitePotion
	Shuffler
	MagnifyingGlass
	RedPotion
	Handcuffs
	Telephone
	Pillow
	Contract
	Radio
)

// HiddenLabel is the shared presentation label for concealed spirits.
const HiddenLabel = "MYSTERIOUS_CHARM"

var allSpirits = []Spirit{
	Amulet, Mirror, RemoteControl, Eraser, Gloves, GreenPotion, Creation,
	Mushroom, WhitePotion, Shuffler, MagnifyingGlass, RedPotion, Handcuffs,
	Telephone, Pillow, Contract, Radio,
}

var spiritIDs = map[Spirit]string{
	Amulet:          "AMULET",
	Mirror:          "MIRROR",
	RemoteControl:   "REMOTE_CONTROL",
	Eraser:          "ERASER",
	Gloves:          "GLOVES",
	GreenPotion:     "GREEN_POTION",
	Creation:        "CREATION",
	Mushroom:        "MUSHROOM",
	WhitePotion:     "WHITE_POTION",
	Shuffler:        "SHUFFLER",
	MagnifyingGlass: "MAGNIFYING_GLASS",
	RedPotion:       "RED_POTION",
	Handcuffs:       "HANDCUFFS",
	Telephone:       "TELEPHONE",
	Pillow:          "PILLOW",
	Contract:        "CONTRACT",
	Radio:           "RADIO",
}

var spiritNames = map[Spirit]string{
	Amulet:          "Amulet",
	Mirror:          "Mirror",
	RemoteControl:   "Remote Control",
	Eraser:          "Eraser",
	Gloves:          "Gloves",
	GreenPotion:     "Green Potion",
	Creation:        "Creation",
	Mushroom:        "Mushroom",
	WhitePotion:     "White Potion",
	Shuffler:        "Shuffler",
	MagnifyingGlass: "Magnifying Glass",
	RedPotion:       "Red Potion",
	Handcuffs:       "Handcuffs",
	Telephone:       "Telephone",
	Pillow:          "Pillow",
	Contract:        "Contract",
	Radio:           "Radio",
}

// AllSpirits returns every spirit kind in catalog order.
func AllSpirits() []Spirit {
	out := make([]Spirit, len(allSpirits))
	copy(out, allSpirits)
	return out
}

// String returns the protocol identifier for a Spirit.
func (s Spirit) String() string {
	if id, ok := spiritIDs[s]; ok {
		return id
	}
	return "NONE"
}

// Name returns the human-readable name of the true kind.
func (s Spirit) Name() string {
	if n, ok := spiritNames[s]; ok {
		return n
	}
	return "Nothing"
}

// IsHidden reports whether the kind is concealed from the opponent in
// every presentation.
func (s Spirit) IsHidden() bool {
	return s == Amulet || s == Mirror
}

// NonRepeatable reports whether a player may not use this kind twice in a
// row within the same turn.
func (s Spirit) NonRepeatable() bool {
	return s == Handcuffs || s == RemoteControl
}

// ParseSpirit maps a protocol identifier back to its Spirit.
func ParseSpirit(id string) (Spirit, bool) {
	for s, v := range spiritIDs {
		if v == id {
			return s, true
		}
	}
	return SpiritNone, false
}

// Label is the presentation identifier: hidden kinds collapse to HiddenLabel
// unless reveal is set.
func Label(s Spirit, reveal bool) string {
	if s.IsHidden() && !reveal {
		return HiddenLabel
	}
	return s.String()
}

// DisplayName is the human-readable counterpart of Label.
func DisplayName(s Spirit, reveal bool) string {
	if s.IsHidden() && !reveal {
		return "Mysterious Charm"
	}
	return s.Name()
}
