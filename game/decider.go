package game

import "context"

// ActionKind is what a player does at a decision point of their turn.
type ActionKind int

const (
	ActionDrawFate ActionKind = iota
	ActionUseSpirit
)

// Action is a turn decision. Index is the hand position for ActionUseSpirit.
type Action struct {
	Kind  ActionKind
	Index int
}

// UseSpirit returns the action using the spirit at hand position i.
func UseSpirit(i int) Action { return Action{Kind: ActionUseSpirit, Index: i} }

// DrawFate returns the action ending the spirit phase.
func DrawFate() Action { return Action{Kind: ActionDrawFate} }

// Target is who a drawn fate card is aimed at.
type Target int

const (
	TargetOpponent Target = iota
	TargetSelf
)

// Decider answers every choice the engine asks of a seat. Humans and AI
// tiers implement it. Implementations may block; they must honour ctx.
type Decider interface {
	// ChooseAction picks the next action of the spirit phase.
	ChooseAction(ctx context.Context, view TurnView) (Action, error)
	// ChooseTarget aims the fate card about to be drawn.
	ChooseTarget(ctx context.Context, view TurnView) (Target, error)
	// ChooseStealTarget picks an index into candidates, which come from the
	// opponent's hand.
	ChooseStealTarget(ctx context.Context, view TurnView, candidates []Spirit) (int, error)
	// ChooseForcedUse picks an index into candidates, the opponent's hand,
	// or declines with ok=false.
	ChooseForcedUse(ctx context.Context, view TurnView, candidates []Spirit) (idx int, ok bool, err error)
	// ChoosePeekPosition picks a 1-based deck position in [1, deckSize].
	ChoosePeekPosition(ctx context.Context, view TurnView, deckSize int) (int, error)
}
