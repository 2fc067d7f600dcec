// Package stats tallies a human seat's play from match events.
package stats

import "github.com/bwwq/fate-roulette/game"

// Tally is the statistics of one profile, either for a single match or
// accumulated over many. Spirit keys are event labels, so hidden spirits
// count under game.HiddenLabel.
type Tally struct {
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	DamageDealt int            `json:"damageDealt"`
	DamageTaken int            `json:"damageTaken"`
	SpiritUses  map[string]int `json:"spiritUses"`
	FateDraws   map[string]int `json:"fateDraws"`
}

// NewTally returns an empty Tally with its maps allocated.
func NewTally() Tally {
	return Tally{SpiritUses: make(map[string]int), FateDraws: make(map[string]int)}
}

// Add folds o into t.
func (t *Tally) Add(o Tally) {
	if t.SpiritUses == nil {
		t.SpiritUses = make(map[string]int)
	}
	if t.FateDraws == nil {
		t.FateDraws = make(map[string]int)
	}
	t.Wins += o.Wins
	t.Losses += o.Losses
	t.DamageDealt += o.DamageDealt
	t.DamageTaken += o.DamageTaken
	for k, n := range o.SpiritUses {
		t.SpiritUses[k] += n
	}
	for k, n := range o.FateDraws {
		t.FateDraws[k] += n
	}
}

// Games is the number of decided matches in the tally.
func (t Tally) Games() int { return t.Wins + t.Losses }

// Recorder is a game.EventSink that tallies the play of one seat.
type Recorder struct {
	seat   int
	tally  Tally
	winner int
}

var _ game.EventSink = (*Recorder)(nil)

// NewRecorder returns a recorder for seat.
func NewRecorder(seat int) *Recorder {
	return &Recorder{seat: seat, tally: NewTally(), winner: game.NoSeat}
}

// Emit implements game.EventSink.
func (r *Recorder) Emit(ev game.Event) {
	switch ev.Type {
	case game.EventSpiritUsed:
		if ev.Seat == r.seat {
			r.tally.SpiritUses[ev.Item]++
		}
	case game.EventCardDrawn:
		if ev.Seat == r.seat {
			r.tally.FateDraws[ev.Card.String()]++
		}
	case game.EventDamageDealt:
		if ev.Seat == r.seat {
			r.tally.DamageTaken += ev.Amount
		}
		if ev.Other == r.seat {
			r.tally.DamageDealt += ev.Amount
		}
	case game.EventMatchOver:
		r.winner = ev.Seat
	}
}

// Finished reports whether a MatchOver event has been seen.
func (r *Recorder) Finished() bool { return r.winner != game.NoSeat }

// Won reports whether the recorded seat won.
func (r *Recorder) Won() bool { return r.winner == r.seat }

// Tally returns the match statistics, with the result counted once the
// match is over.
func (r *Recorder) Tally() Tally {
	out := NewTally()
	out.Add(r.tally)
	if r.Finished() {
		if r.Won() {
			out.Wins = 1
		} else {
			out.Losses = 1
		}
	}
	return out
}
