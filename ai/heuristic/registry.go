package heuristic

import (
	"github.com/bwwq/fate-roulette/game"
)

// Tendency is the scoring AI's stance for the current decision.
type Tendency int

const (
	Stable Tendency = iota
	Aggressive
	Defensive
)

// String returns the log name of a Tendency.
func (t Tendency) String() string {
	switch t {
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	default:
		return "stable"
	}
}

// Fallback scores for kinds with no matching rule.
const (
	DefaultUseScore   = 30
	DefaultForceScore = 10
)

// Situation is what the scoring functions look at. For forced-use scoring
// Self is the chooser and Opponent owns the candidate spirits.
type Situation struct {
	Self      game.PlayerView
	Opponent  game.PlayerView
	KnownNext game.FateCard
	Tendency  Tendency
}

// UseFunc returns the base score for using a held spirit. ok=false means
// no rule applies and DefaultUseScore is used.
type UseFunc func(s Situation) (score float64, ok bool)

// ForceFunc returns how much forcing the opponent to use a spirit is worth
// to the chooser. ok=false means DefaultForceScore.
type ForceFunc func(s Situation) (score float64, ok bool)

type entry struct {
	use   UseFunc
	force ForceFunc
}

var registry = make(map[game.Spirit]entry)

// Register adds or overwrites the heuristics for a spirit. Either func may be nil.
func Register(kind game.Spirit, use UseFunc, force ForceFunc) {
	registry[kind] = entry{use: use, force: force}
}

// UseScore returns the base use score for kind.
func UseScore(kind game.Spirit, s Situation) float64 {
	if e, ok := registry[kind]; ok && e.use != nil {
		if score, ok := e.use(s); ok {
			return score
		}
	}
	return DefaultUseScore
}

// ForceScore returns the forced-use score for kind.
func ForceScore(kind game.Spirit, s Situation) float64 {
	if e, ok := registry[kind]; ok && e.force != nil {
		if score, ok := e.force(s); ok {
			return score
		}
	}
	return DefaultForceScore
}
