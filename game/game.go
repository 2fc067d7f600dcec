package game

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
)

// SpiritDef holds the definition of a spirit as seen by the game package.
// Apply runs with user as the player the effect belongs to; decisions it
// needs go to m.DecisionMaker(user).
type SpiritDef struct {
	Kind        Spirit
	Name        string
	Description string
	Apply       func(ctx context.Context, m *Match, user, opponent *Player) error
}

// SpiritProvider abstracts the spirit registry so the game package does
// not import the spirit package directly (avoids circular deps).
type SpiritProvider interface {
	Spirit(kind Spirit) (SpiritDef, bool)
	AllSpirits() []SpiritDef
}

// Match runs one duel between two seats.
type Match struct {
	ID         string
	Players    [2]*Player
	Deciders   [2]Decider
	SpiritDeck *SpiritDeck
	FateDeck   *FateDeck
	Spirits    SpiritProvider

	// Current is the seat whose turn it is.
	Current int
	// Round counts turn starts, skipped turns included.
	Round    int
	Finished bool
	Winner   int

	// extraTurn is the seat granted the next turn, or NoSeat.
	extraTurn int
	// lastUsed is the last spirit each seat used in the current turn.
	lastUsed [2]Spirit
	// finalTurn marks that a last-stand seat has started the turn it was granted.
	finalTurn [2]bool
	// deciding is the stack of seats answering for a forced spirit.
	deciding []int

	sinks []EventSink
	rng   RNG
	turn  *fsm.FSM
}

// NewMatch wires two seats, their deciders and the spirit registry. Call
// Deal before Run.
func NewMatch(id string, players [2]*Player, deciders [2]Decider, spirits SpiritProvider, rng RNG) *Match {
	m := &Match{
		ID:         id,
		Players:    players,
		Deciders:   deciders,
		Spirits:    spirits,
		SpiritDeck: NewSpiritDeck(rng),
		FateDeck:   NewFateDeck(rng),
		Winner:     NoSeat,
		extraTurn:  NoSeat,
		rng:        rng,
	}
	for i, p := range players {
		p.Seat = i
	}
	m.FateDeck.OnRegenerate = m.fateDeckRegenerated
	m.turn = newTurnFSM(m.ID)
	return m
}

// AddSink registers an observer of every event.
func (m *Match) AddSink(s EventSink) {
	m.sinks = append(m.sinks, s)
}

// Rand exposes the match randomness to spirit handlers.
func (m *Match) Rand() RNG { return m.rng }

// State returns the current turn phase.
func (m *Match) State() string { return m.turn.Current() }

// Opponent returns the other seat.
func (m *Match) Opponent(p *Player) *Player {
	return m.Players[1-p.Seat]
}

// Deal resets both seats, builds a fresh fate deck, deals the opening
// hands and picks the first player at random. The second player gets one
// extra spirit.
func (m *Match) Deal() {
	for _, p := range m.Players {
		p.reset()
	}
	m.Round = 0
	m.Finished = false
	m.Winner = NoSeat
	m.extraTurn = NoSeat
	m.lastUsed = [2]Spirit{}
	m.finalTurn = [2]bool{}
	m.FateDeck.Regenerate()
	for _, p := range m.Players {
		m.DrawSpirits(p, InitialSpirits)
	}
	m.Current = m.rng.Intn(2)
	m.DrawSpirits(m.Players[1-m.Current], SecondPlayerBonus)
	m.Emit(Event{Type: EventMatchStarted, Seat: m.Current, Other: NoSeat, Amount: m.FateDeck.Len(), Audience: Everyone})
	slog.Info("match dealt", "tag", "game", "matchID", m.ID, "first", m.Players[m.Current].Name)
}

// Emit delivers ev to every sink and to observing deciders allowed to see it.
func (m *Match) Emit(ev Event) {
	for _, s := range m.sinks {
		s.Emit(ev)
	}
	for seat, d := range m.Deciders {
		if obs, ok := d.(EventObserver); ok && ev.VisibleTo(seat) {
			obs.Observe(ev)
		}
	}
}

func (m *Match) fateDeckRegenerated(cards []FateCard) {
	m.Emit(Event{Type: EventDeckRegenerated, Seat: NoSeat, Other: NoSeat, Amount: len(cards), Audience: Everyone})
	for _, d := range m.Deciders {
		if t, ok := d.(DeckTracker); ok {
			t.TrackDeck(cards)
		}
	}
}

// finish ends the match with winner as the victor.
func (m *Match) finish(winner int) {
	if m.Finished {
		return
	}
	m.Finished = true
	m.Winner = winner
	m.Emit(Event{Type: EventMatchOver, Seat: winner, Other: 1 - winner, Audience: Everyone})
	slog.Info("match over", "tag", "game", "matchID", m.ID, "winner", m.Players[winner].Name, "round", m.Round)
}

// GrantExtraTurn gives p the next turn.
func (m *Match) GrantExtraTurn(p *Player) {
	m.extraTurn = p.Seat
	m.Emit(Event{Type: EventExtraTurn, Seat: p.Seat, Other: NoSeat, Audience: Everyone})
}
