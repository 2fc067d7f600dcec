package game

// EventType enumerates the observable things that happen during a match.
type EventType int

const (
	EventMatchStarted EventType = iota
	EventTurnStarted
	EventTurnSkipped
	EventTurnEnded
	EventSpiritGained
	EventHandFull
	EventSpiritUsed
	EventSpiritForced
	EventSpiritRemoved
	EventSpiritStolen
	EventNothingHappened
	EventDamageDealt
	EventDamageAbsorbed
	EventHealed
	EventStatusApplied
	EventStatusExpired
	EventStatusBlocked
	EventMirrorReflected
	EventDeckRegenerated
	EventDeckShuffled
	EventCardSubstituted
	EventCardDrawn
	EventCardPeeked
	EventCardResolved
	EventExtraTurn
	EventRemoteControl
	EventLastStand
	EventInvalidChoice
	EventDiagnostic
	EventMatchOver
)

var eventTypeNames = [...]string{
	EventMatchStarted:    "match_started",
	EventTurnStarted:     "turn_started",
	EventTurnSkipped:     "turn_skipped",
	EventTurnEnded:       "turn_ended",
	EventSpiritGained:    "spirit_gained",
	EventHandFull:        "hand_full",
	EventSpiritUsed:      "spirit_used",
	EventSpiritForced:    "spirit_forced",
	EventSpiritRemoved:   "spirit_removed",
	EventSpiritStolen:    "spirit_stolen",
	EventNothingHappened: "nothing_happened",
	EventDamageDealt:     "damage_dealt",
	EventDamageAbsorbed:  "damage_absorbed",
	EventHealed:          "healed",
	EventStatusApplied:   "status_applied",
	EventStatusExpired:   "status_expired",
	EventStatusBlocked:   "status_blocked",
	EventMirrorReflected: "mirror_reflected",
	EventDeckRegenerated: "deck_regenerated",
	EventDeckShuffled:    "deck_shuffled",
	EventCardSubstituted: "card_substituted",
	EventCardDrawn:       "card_drawn",
	EventCardPeeked:      "card_peeked",
	EventCardResolved:    "card_resolved",
	EventExtraTurn:       "extra_turn",
	EventRemoteControl:   "remote_control",
	EventLastStand:       "last_stand",
	EventInvalidChoice:   "invalid_choice",
	EventDiagnostic:      "diagnostic",
	EventMatchOver:       "match_over",
}

// String returns the protocol string for an EventType.
func (t EventType) String() string {
	if int(t) >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// StatusKind names the status an EventStatus* event is about.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusBarrier
	StatusReflection
	StatusHandcuffed
	StatusPillowImmunity
	StatusSkipTurn
	StatusContract
	StatusRedPotion
	StatusRemoteControl
	StatusMushroom
	StatusShuffler
)

var statusNames = [...]string{
	StatusNone:           "none",
	StatusBarrier:        "barrier",
	StatusReflection:     "reflection",
	StatusHandcuffed:     "handcuffed",
	StatusPillowImmunity: "pillow_immunity",
	StatusSkipTurn:       "skip_turn",
	StatusContract:       "contract",
	StatusRedPotion:      "red_potion",
	StatusRemoteControl:  "remote_control",
	StatusMushroom:       "mushroom",
	StatusShuffler:       "shuffler",
}

// String returns the protocol string for a StatusKind.
func (s StatusKind) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Everyone is the Audience of a public event; NoSeat marks an unused seat field.
const (
	Everyone = -1
	NoSeat   = -1
)

// Event is one entry of the match log. Item is already projected: hidden
// spirits carry HiddenLabel unless Revealed is set.
type Event struct {
	Type     EventType
	Seat     int
	Other    int
	Item     string
	Card     FateCard
	Amount   int
	Status   StatusKind
	Position int
	Audience int
	Revealed bool
	Reason   string
}

// VisibleTo reports whether seat may see the event.
func (e Event) VisibleTo(seat int) bool {
	return e.Audience == Everyone || e.Audience == seat
}

// EventSink receives every event of a match, including private ones.
// Sinks filter by Audience themselves.
type EventSink interface {
	Emit(ev Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev Event)

// Emit calls f(ev).
func (f EventSinkFunc) Emit(ev Event) { f(ev) }

// EventObserver is implemented by deciders that learn from the events
// visible to their seat.
type EventObserver interface {
	Observe(ev Event)
}

// DeckTracker is implemented by deciders that are told the full contents
// of the fate deck whenever it is rebuilt.
type DeckTracker interface {
	TrackDeck(cards []FateCard)
}
