package ws

import (
	"encoding/json"

	"github.com/bwwq/fate-roulette/game"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	// Unmarshal just the type field
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg is sent by the client with a JWT before starting a match.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// StartMsg asks for a match against the AI of the given difficulty tier.
type StartMsg struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

// ActionMsg answers an "action" prompt. Index is the hand slot for use_spirit.
type ActionMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"` // "use_spirit" or "draw_fate"
	Index  int    `json:"index"`
}

// TargetMsg answers a "target" prompt.
type TargetMsg struct {
	Type   string `json:"type"`
	Target string `json:"target"` // "self" or "opponent"
}

// ChooseMsg answers a "steal", "force" or "peek" prompt with an option
// index. -1 declines a "force" prompt.
type ChooseMsg struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client message is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WelcomeMsg confirms authentication and reports unlock progress.
type WelcomeMsg struct {
	Type     string `json:"type"`
	Profile  string `json:"profile"`
	Name     string `json:"name"`
	Unlocked int    `json:"unlocked"`
}

// Prompt kinds.
const (
	PromptAction = "action"
	PromptTarget = "target"
	PromptSteal  = "steal"
	PromptForce  = "force"
	PromptPeek   = "peek"
)

// PromptMsg asks the human for a decision.
type PromptMsg struct {
	Type    string        `json:"type"`
	Prompt  string        `json:"prompt"`
	Options []string      `json:"options"`
	State   game.StateMsg `json:"state"`
}

// EventPayload is the client projection of a game.Event. Seats are
// relative to the receiving player.
type EventPayload struct {
	Kind     string `json:"kind"`
	Seat     string `json:"seat,omitempty"`  // "you" or "opponent"
	Other    string `json:"other,omitempty"` // "you" or "opponent"
	Item     string `json:"item,omitempty"`
	Card     string `json:"card,omitempty"`
	Amount   int    `json:"amount,omitempty"`
	Status   string `json:"status,omitempty"`
	Position int    `json:"position,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Text     string `json:"text"`
}

// EventMsg streams one match event.
type EventMsg struct {
	Type  string       `json:"type"`
	Event EventPayload `json:"event"`
}

// MatchOverMsg is sent once the duel is decided.
type MatchOverMsg struct {
	Type     string `json:"type"`
	Winner   string `json:"winner"`
	YouWon   bool   `json:"youWon"`
	Unlocked int    `json:"unlocked"`
}
