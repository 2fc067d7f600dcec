package game

// RNG is the randomness a match draws from. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Fate deck size bounds (inclusive). Each regeneration draws a size in
// this range and fills it uniformly with replacement.
const (
	MinFateCards = 5
	MaxFateCards = 10
)

// SpiritCopies is the number of copies of every kind in a fresh spirit deck.
const SpiritCopies = 2

// SpiritDeck is the shared draw pile of spirits. It never runs dry: an
// empty pile is rebuilt from the full catalog and reshuffled.
type SpiritDeck struct {
	cards []Spirit
	rng   RNG
}

// NewSpiritDeck returns a shuffled deck with SpiritCopies of every kind.
func NewSpiritDeck(rng RNG) *SpiritDeck {
	d := &SpiritDeck{rng: rng}
	d.refill()
	return d
}

func (d *SpiritDeck) refill() {
	d.cards = d.cards[:0]
	for i := 0; i < SpiritCopies; i++ {
		d.cards = append(d.cards, allSpirits...)
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
}

// Len returns the number of spirits left before the next refill.
func (d *SpiritDeck) Len() int { return len(d.cards) }

// Draw takes the top spirit, refilling first when empty.
func (d *SpiritDeck) Draw() (kind Spirit, refilled bool) {
	if len(d.cards) == 0 {
		d.refill()
		refilled = true
	}
	last := len(d.cards) - 1
	kind = d.cards[last]
	d.cards = d.cards[:last]
	return kind, refilled
}

// FateDeck is the shared fate pile. Draws come off the front.
type FateDeck struct {
	cards []FateCard
	rng   RNG

	// OnRegenerate is called with a copy of the new contents every time the
	// deck is rebuilt.
	OnRegenerate func(cards []FateCard)
}

// FateDraw is the outcome of one fate draw with its modifiers.
type FateDraw struct {
	Card        FateCard
	Shuffled    bool
	Substituted bool
	// Replaced is the card the mushroom threw away.
	Replaced FateCard
}

// NewFateDeck returns an empty deck; it generates contents on first use.
func NewFateDeck(rng RNG) *FateDeck {
	return &FateDeck{rng: rng}
}

// Regenerate discards the remaining cards and builds a fresh deck.
func (d *FateDeck) Regenerate() {
	n := MinFateCards + d.rng.Intn(MaxFateCards-MinFateCards+1)
	cards := make([]FateCard, n)
	for i := range cards {
		cards[i] = d.randomCard()
	}
	d.Reset(cards)
}

// Reset replaces the deck contents and reports them as a regeneration.
func (d *FateDeck) Reset(cards []FateCard) {
	d.cards = append(d.cards[:0], cards...)
	if d.OnRegenerate != nil {
		d.OnRegenerate(d.Cards())
	}
}

func (d *FateDeck) randomCard() FateCard {
	return allFateCards[d.rng.Intn(len(allFateCards))]
}

// ensure regenerates an empty deck.
func (d *FateDeck) ensure() {
	if len(d.cards) == 0 {
		d.Regenerate()
	}
}

// Len returns the number of cards left.
func (d *FateDeck) Len() int { return len(d.cards) }

// Cards returns a copy of the remaining cards, front first.
func (d *FateDeck) Cards() []FateCard {
	out := make([]FateCard, len(d.cards))
	copy(out, d.cards)
	return out
}

// Peek returns the card at 0-based position pos without drawing it. An
// empty deck is regenerated first.
func (d *FateDeck) Peek(pos int) (FateCard, bool) {
	d.ensure()
	if pos < 0 || pos >= len(d.cards) {
		return FateNone, false
	}
	return d.cards[pos], true
}

func (d *FateDeck) pop() FateCard {
	d.ensure()
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// Draw takes the front card. shuffle swaps the front with a random later
// card first; substitute discards the front and draws a random
// replacement in its place.
func (d *FateDeck) Draw(shuffle, substitute bool) FateDraw {
	var res FateDraw
	d.ensure()
	if shuffle && len(d.cards) > 1 {
		j := 1 + d.rng.Intn(len(d.cards)-1)
		d.cards[0], d.cards[j] = d.cards[j], d.cards[0]
		res.Shuffled = true
	}
	if substitute {
		res.Replaced = d.pop()
		d.ensure()
		d.cards = append([]FateCard{d.randomCard()}, d.cards...)
		res.Substituted = true
	}
	res.Card = d.pop()
	return res
}
