package console

import "github.com/bwwq/fate-roulette/game"

// Renderer is a game.EventSink that narrates events on the terminal.
type Renderer struct {
	term  *Terminal
	seat  int
	names [2]string
}

var _ game.EventSink = (*Renderer)(nil)

// NewRenderer narrates what seat may see. game.Everyone shows every event,
// for a hot-seat table where both players share the screen.
func NewRenderer(term *Terminal, seat int, names [2]string) *Renderer {
	return &Renderer{term: term, seat: seat, names: names}
}

// Emit implements game.EventSink.
func (r *Renderer) Emit(ev game.Event) {
	if r.seat != game.Everyone && !ev.VisibleTo(r.seat) {
		return
	}
	if ev.Type == game.EventTurnEnded {
		return
	}
	prefix := "* "
	if ev.Audience != game.Everyone {
		prefix = "* (private) "
	}
	r.term.Printf("%s%s\n", prefix, game.Describe(ev, r.names))
}
