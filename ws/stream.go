package ws

import "github.com/bwwq/fate-roulette/game"

// EventStream is a game.EventSink that forwards the events one seat may
// see to its client.
type EventStream struct {
	seat  int
	names [2]string
	send  func(v any)
}

var _ game.EventSink = (*EventStream)(nil)

// NewEventStream returns a sink for seat. names are the seat display names.
func NewEventStream(seat int, names [2]string, send func(v any)) *EventStream {
	return &EventStream{seat: seat, names: names, send: send}
}

func (s *EventStream) relative(seat int) string {
	switch seat {
	case s.seat:
		return "you"
	case 1 - s.seat:
		return "opponent"
	default:
		return ""
	}
}

// Emit implements game.EventSink.
func (s *EventStream) Emit(ev game.Event) {
	if !ev.VisibleTo(s.seat) {
		return
	}
	s.send(EventMsg{Type: "event", Event: s.project(ev)})
}

func (s *EventStream) project(ev game.Event) EventPayload {
	p := EventPayload{
		Kind:     ev.Type.String(),
		Seat:     s.relative(ev.Seat),
		Other:    s.relative(ev.Other),
		Item:     ev.Item,
		Amount:   ev.Amount,
		Position: ev.Position,
		Reason:   ev.Reason,
		Text:     game.Describe(ev, s.names),
	}
	if ev.Card != game.FateNone {
		p.Card = ev.Card.String()
	}
	if ev.Status != game.StatusNone {
		p.Status = ev.Status.String()
	}
	return p
}
