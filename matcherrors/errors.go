package matcherrors

import "errors"

// Duel sentinel errors. Shared by game, spirit, lobby and ws packages
// to avoid circular imports.
var (
	ErrHandcuffed    = errors.New("spirits are locked by handcuffs this turn")
	ErrRepeatUse     = errors.New("this spirit cannot be used twice in a row")
	ErrNoSuchSpirit  = errors.New("no spirit at that hand position")
	ErrEmptyHand     = errors.New("hand is empty")
	ErrMatchOver     = errors.New("match is already over")
	ErrLevelLocked   = errors.New("difficulty level is locked")
	ErrUnknownSpirit = errors.New("no handler registered for spirit")
	ErrNotConfigured = errors.New("storage is not configured")
)

// IsChoiceError reports whether err is a rejected in-turn choice that the
// acting player may retry.
func IsChoiceError(err error) bool {
	return errors.Is(err, ErrHandcuffed) ||
		errors.Is(err, ErrRepeatUse) ||
		errors.Is(err, ErrNoSuchSpirit) ||
		errors.Is(err, ErrEmptyHand)
}
