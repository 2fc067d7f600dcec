package game

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/bwwq/fate-roulette/matcherrors"
)

// Turn phases.
const (
	PhaseUpkeep    = "upkeep"
	PhaseAction    = "action"
	PhaseFate      = "fate"
	PhaseTurnEnd   = "turn_end"
	PhaseMatchOver = "match_over"
)

// Turn transitions.
const (
	evBeginActions = "begin_actions"
	evSkip         = "skip"
	evDraw         = "draw"
	evPillow       = "pillow"
	evResolve      = "resolve"
	evNextTurn     = "next_turn"
	evFinish       = "finish"
)

func newTurnFSM(matchID string) *fsm.FSM {
	return fsm.NewFSM(
		PhaseUpkeep,
		fsm.Events{
			{Name: evBeginActions, Src: []string{PhaseUpkeep}, Dst: PhaseAction},
			{Name: evSkip, Src: []string{PhaseUpkeep}, Dst: PhaseTurnEnd},
			{Name: evDraw, Src: []string{PhaseAction}, Dst: PhaseFate},
			{Name: evPillow, Src: []string{PhaseAction}, Dst: PhaseTurnEnd},
			{Name: evResolve, Src: []string{PhaseFate}, Dst: PhaseTurnEnd},
			{Name: evNextTurn, Src: []string{PhaseTurnEnd}, Dst: PhaseUpkeep},
			{Name: evFinish, Src: []string{PhaseUpkeep, PhaseAction, PhaseFate, PhaseTurnEnd}, Dst: PhaseMatchOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("turn phase", "tag", "game", "matchID", matchID, "from", e.Src, "to", e.Dst)
			},
		},
	)
}

func (m *Match) transition(ctx context.Context, event string) {
	if err := m.turn.Event(ctx, event); err != nil {
		slog.Error("turn transition", "tag", "game", "matchID", m.ID, "event", event, "phase", m.turn.Current(), "err", err)
	}
}

// Run plays turns until the match is decided or ctx is done. It returns
// the winning seat.
func (m *Match) Run(ctx context.Context) (int, error) {
	for !m.Finished {
		if err := ctx.Err(); err != nil {
			return NoSeat, err
		}
		if err := m.playTurn(ctx); err != nil {
			return NoSeat, err
		}
		if m.Finished {
			break
		}
		m.endTurn()
		if m.Finished {
			break
		}
		m.transition(ctx, evNextTurn)
	}
	m.transition(ctx, evFinish)
	return m.Winner, nil
}

// playTurn runs one turn of the current seat from upkeep to the end of
// its fate resolution.
func (m *Match) playTurn(ctx context.Context) error {
	p := m.Players[m.Current]
	d := m.Deciders[p.Seat]
	m.Round++
	m.lastUsed[p.Seat] = SpiritNone
	m.Emit(Event{Type: EventTurnStarted, Seat: p.Seat, Other: NoSeat, Amount: m.Round, Audience: Everyone})
	m.upkeep(p)

	if p.Status.SkipNextTurn {
		p.Status.SkipNextTurn = false
		m.Emit(Event{Type: EventTurnSkipped, Seat: p.Seat, Other: NoSeat, Item: Pillow.String(), Audience: Everyone})
		m.transition(ctx, evSkip)
		return nil
	}
	m.transition(ctx, evBeginActions)

	for {
		act, err := d.ChooseAction(ctx, m.View(p.Seat))
		if err != nil {
			return err
		}
		if act.Kind == ActionDrawFate {
			break
		}
		kind, err := m.UseSpirit(ctx, p, act.Index)
		if err != nil {
			if matcherrors.IsChoiceError(err) {
				m.rejectChoice(p, err)
				continue
			}
			return err
		}
		if m.Finished {
			return nil
		}
		if kind == Pillow {
			m.transition(ctx, evPillow)
			return nil
		}
	}

	m.lastUsed[p.Seat] = SpiritNone
	m.transition(ctx, evDraw)
	aim, err := d.ChooseTarget(ctx, m.View(p.Seat))
	if err != nil {
		return err
	}
	target := m.Opponent(p)
	if aim == TargetSelf {
		target = p
	}
	card := m.drawFate(p)
	m.ResolveFate(card, p, target)
	if m.Finished {
		return nil
	}
	m.transition(ctx, evResolve)
	return nil
}

// upkeep ticks p's timed statuses at the start of their turn and lifts the
// handcuffs p put on the opponent.
func (m *Match) upkeep(p *Player) {
	// Armed at upkeep: a last stand won mid-turn still gets one full turn.
	if p.Status.LastStand {
		m.finalTurn[p.Seat] = true
	}
	if p.Status.AmuletTurns > 0 {
		p.Status.AmuletTurns--
		if p.Status.AmuletTurns == 0 {
			m.Emit(Event{Type: EventStatusExpired, Seat: p.Seat, Other: NoSeat, Status: StatusBarrier, Audience: Everyone})
		}
	}
	if p.Status.PillowImmunity > 0 {
		p.Status.PillowImmunity--
		if p.Status.PillowImmunity == 0 {
			m.Emit(Event{Type: EventStatusExpired, Seat: p.Seat, Other: NoSeat, Status: StatusPillowImmunity, Audience: Everyone})
		}
	}
	if p.Status.IsMirrored {
		p.Status.IsMirrored = false
		m.Emit(Event{Type: EventStatusExpired, Seat: p.Seat, Other: NoSeat, Status: StatusReflection, Audience: Everyone})
	}
	if opp := m.Opponent(p); opp.Status.IsHandcuffed {
		opp.Status.IsHandcuffed = false
		m.Emit(Event{Type: EventStatusExpired, Seat: opp.Seat, Other: NoSeat, Status: StatusHandcuffed, Audience: Everyone})
	}
	p.Status.RedPotionBonus = 0
}

// endTurn decides who plays next: a last stand that has run its course
// loses, a granted extra turn goes first, then a pending remote control
// fires against the opponent, then the turn simply passes.
func (m *Match) endTurn() {
	p := m.Players[m.Current]
	opp := m.Opponent(p)
	m.Emit(Event{Type: EventTurnEnded, Seat: p.Seat, Other: NoSeat, Audience: Everyone})

	if p.Status.LastStand && m.finalTurn[p.Seat] {
		m.Emit(Event{Type: EventStatusExpired, Seat: p.Seat, Other: NoSeat, Item: Contract.String(), Status: StatusContract, Reason: "last stand failed", Audience: Everyone})
		m.finish(opp.Seat)
		return
	}
	if m.extraTurn != NoSeat {
		m.Current = m.extraTurn
		m.extraTurn = NoSeat
		return
	}
	if p.Status.RemoteControlActive {
		p.Status.RemoteControlActive = false
		m.Emit(Event{Type: EventRemoteControl, Seat: opp.Seat, Other: p.Seat, Item: RemoteControl.String(), Audience: Everyone})
		card := m.drawFate(opp)
		m.ResolveFate(card, opp, opp)
		if m.Finished {
			return
		}
	}
	m.Current = opp.Seat
}
