package game

import "fmt"

// ItemName returns the display name for an event Item label.
func ItemName(label string) string {
	if label == HiddenLabel {
		return DisplayName(Amulet, false)
	}
	if s, ok := ParseSpirit(label); ok {
		return s.Name()
	}
	return label
}

var statusText = map[StatusKind]string{
	StatusBarrier:        "a protective aura",
	StatusReflection:     "a shimmering aura",
	StatusHandcuffed:     "handcuffs",
	StatusPillowImmunity: "pillow immunity",
	StatusSkipTurn:       "a deep sleep",
	StatusContract:       "a contract",
	StatusRedPotion:      "a damage bonus",
	StatusRemoteControl:  "a remote control",
	StatusMushroom:       "a mushroom",
	StatusShuffler:       "a shuffler",
}

// Describe renders ev as one line of narration. names holds the display
// name of each seat. Only fields the event already carries are used, so
// a concealed spirit stays concealed.
func Describe(ev Event, names [2]string) string {
	who := func(seat int) string {
		if seat >= 0 && seat < len(names) {
			return names[seat]
		}
		return "Nobody"
	}
	seat, other, item := who(ev.Seat), who(ev.Other), ItemName(ev.Item)

	switch ev.Type {
	case EventMatchStarted:
		return fmt.Sprintf("The duel begins. %s goes first; the fate deck holds %d cards.", seat, ev.Amount)
	case EventTurnStarted:
		return fmt.Sprintf("Round %d: %s's turn.", ev.Amount, seat)
	case EventTurnSkipped:
		return fmt.Sprintf("%s sleeps through the turn.", seat)
	case EventTurnEnded:
		return fmt.Sprintf("%s ends the turn.", seat)
	case EventSpiritGained:
		return fmt.Sprintf("%s gains %s.", seat, item)
	case EventHandFull:
		return fmt.Sprintf("%s's hand is full (%d).", seat, ev.Amount)
	case EventSpiritUsed:
		return fmt.Sprintf("%s uses %s.", seat, item)
	case EventSpiritForced:
		return fmt.Sprintf("%s makes %s use %s.", other, seat, item)
	case EventSpiritRemoved:
		return fmt.Sprintf("%s erases %s from %s.", other, item, seat)
	case EventSpiritStolen:
		return fmt.Sprintf("%s steals %s from %s.", other, item, seat)
	case EventNothingHappened:
		if ev.Reason != "" {
			return fmt.Sprintf("Nothing happens to %s: %s.", seat, ev.Reason)
		}
		return fmt.Sprintf("%s passes %s without effect.", ev.Card.Name(), seat)
	case EventDamageDealt:
		return fmt.Sprintf("%s loses %d HP.", seat, ev.Amount)
	case EventDamageAbsorbed:
		return fmt.Sprintf("%s's %s absorbs %d damage.", seat, item, ev.Amount)
	case EventHealed:
		return fmt.Sprintf("%s recovers %d HP.", seat, ev.Amount)
	case EventStatusApplied:
		return fmt.Sprintf("%s is under %s.", seat, statusText[ev.Status])
	case EventStatusExpired:
		if ev.Reason != "" {
			return fmt.Sprintf("%s's %s is gone: %s.", seat, statusText[ev.Status], ev.Reason)
		}
		return fmt.Sprintf("%s's %s fades.", seat, statusText[ev.Status])
	case EventStatusBlocked:
		return fmt.Sprintf("%s's %s blocks %s.", seat, item, statusText[ev.Status])
	case EventMirrorReflected:
		return fmt.Sprintf("%s's %s reflects %s onto %s!", seat, item, ev.Card.Name(), other)
	case EventDeckRegenerated:
		if ev.Reason == "spirits" {
			return "The spirit deck is reshuffled."
		}
		return fmt.Sprintf("A new fate deck of %d cards appears.", ev.Amount)
	case EventDeckShuffled:
		return fmt.Sprintf("%s's shuffler stirs the fate deck.", seat)
	case EventCardSubstituted:
		return fmt.Sprintf("%s's mushroom discards %s.", seat, ev.Card.Name())
	case EventCardDrawn:
		return fmt.Sprintf("%s draws %s (%d left).", seat, ev.Card.Name(), ev.Amount)
	case EventCardPeeked:
		return fmt.Sprintf("%s sees %s at position %d.", seat, ev.Card.Name(), ev.Position)
	case EventCardResolved:
		return fmt.Sprintf("%s strikes %s.", ev.Card.Name(), other)
	case EventExtraTurn:
		return fmt.Sprintf("%s gains an extra turn.", seat)
	case EventRemoteControl:
		return fmt.Sprintf("%s's remote control makes %s draw.", other, seat)
	case EventLastStand:
		return fmt.Sprintf("%s's contract holds them at 1 HP for one last turn!", seat)
	case EventInvalidChoice:
		return fmt.Sprintf("Invalid choice: %s.", ev.Reason)
	case EventDiagnostic:
		return fmt.Sprintf("Something went wrong: %s.", ev.Reason)
	case EventMatchOver:
		return fmt.Sprintf("%s wins the duel!", seat)
	default:
		return ev.Type.String()
	}
}
