package ws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwwq/fate-roulette/game"
)

// reply is any answer the client sends to a prompt.
type reply struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Target string `json:"target"`
	Index  int    `json:"index"`
}

// RemoteDecider is a game.Decider for a human on a websocket. Each
// decision sends a prompt and waits for a matching reply; malformed
// replies get an error and the same prompt again.
type RemoteDecider struct {
	send    func(v any)
	replies chan reply
}

var _ game.Decider = (*RemoteDecider)(nil)

// NewRemoteDecider returns a decider that writes prompts with send.
func NewRemoteDecider(send func(v any)) *RemoteDecider {
	return &RemoteDecider{send: send, replies: make(chan reply, 8)}
}

// deliver hands a client reply to the waiting prompt. It reports false
// when the reply buffer is full.
func (d *RemoteDecider) deliver(r reply) bool {
	select {
	case d.replies <- r:
		return true
	default:
		return false
	}
}

// ask sends p until accept takes a reply or ctx is done. Replies that
// arrived before the prompt are discarded.
func (d *RemoteDecider) ask(ctx context.Context, p PromptMsg, accept func(r reply) error) error {
	for {
		select {
		case <-d.replies:
			continue
		default:
		}
		break
	}
	p.Type = "prompt"
	for {
		d.send(p)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-d.replies:
			if err := accept(r); err != nil {
				d.send(ErrorMsg{Type: "error", Message: err.Error()})
				continue
			}
			return nil
		}
	}
}

func labels(kinds []game.Spirit) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = game.Label(k, false)
	}
	return out
}

func expect(r reply, typ string) error {
	if r.Type != typ {
		return fmt.Errorf("expected a %s message, got %q", typ, r.Type)
	}
	return nil
}

func (d *RemoteDecider) ChooseAction(ctx context.Context, v game.TurnView) (game.Action, error) {
	var act game.Action
	opts := append(labels(v.Self.Spirits), "draw_fate")
	err := d.ask(ctx, PromptMsg{Prompt: PromptAction, Options: opts, State: game.BuildStateMsg(v, v.Seat)}, func(r reply) error {
		if err := expect(r, "action"); err != nil {
			return err
		}
		switch r.Action {
		case "draw_fate":
			act = game.DrawFate()
		case "use_spirit":
			if r.Index < 0 || r.Index >= len(v.Self.Spirits) {
				return fmt.Errorf("no spirit at index %d", r.Index)
			}
			act = game.UseSpirit(r.Index)
		default:
			return fmt.Errorf("unknown action %q", r.Action)
		}
		return nil
	})
	return act, err
}

func (d *RemoteDecider) ChooseTarget(ctx context.Context, v game.TurnView) (game.Target, error) {
	target := game.TargetOpponent
	err := d.ask(ctx, PromptMsg{Prompt: PromptTarget, Options: []string{"opponent", "self"}, State: game.BuildStateMsg(v, v.Seat)}, func(r reply) error {
		if err := expect(r, "target"); err != nil {
			return err
		}
		switch r.Target {
		case "opponent":
			target = game.TargetOpponent
		case "self":
			target = game.TargetSelf
		default:
			return fmt.Errorf("unknown target %q", r.Target)
		}
		return nil
	})
	return target, err
}

func (d *RemoteDecider) choose(ctx context.Context, prompt string, v game.TurnView, opts []string, allowDecline bool) (int, error) {
	idx := -1
	err := d.ask(ctx, PromptMsg{Prompt: prompt, Options: opts, State: game.BuildStateMsg(v, v.Seat)}, func(r reply) error {
		if err := expect(r, "choose"); err != nil {
			return err
		}
		if r.Index == -1 && allowDecline {
			idx = -1
			return nil
		}
		if r.Index < 0 || r.Index >= len(opts) {
			return fmt.Errorf("choose an option between 0 and %d", len(opts)-1)
		}
		idx = r.Index
		return nil
	})
	return idx, err
}

func (d *RemoteDecider) ChooseStealTarget(ctx context.Context, v game.TurnView, candidates []game.Spirit) (int, error) {
	return d.choose(ctx, PromptSteal, v, labels(candidates), false)
}

func (d *RemoteDecider) ChooseForcedUse(ctx context.Context, v game.TurnView, candidates []game.Spirit) (int, bool, error) {
	idx, err := d.choose(ctx, PromptForce, v, labels(candidates), true)
	if err != nil || idx < 0 {
		return 0, false, err
	}
	return idx, true, nil
}

// ChoosePeekPosition offers positions 1..deckSize; option i is position i+1.
func (d *RemoteDecider) ChoosePeekPosition(ctx context.Context, v game.TurnView, deckSize int) (int, error) {
	opts := make([]string, deckSize)
	for i := range opts {
		opts[i] = strconv.Itoa(i + 1)
	}
	idx, err := d.choose(ctx, PromptPeek, v, opts, false)
	return idx + 1, err
}
