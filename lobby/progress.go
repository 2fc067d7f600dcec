package lobby

import "github.com/bwwq/fate-roulette/ai"

// MaxLevel is the unlocked level of a profile that has beaten every tier.
const MaxLevel = 4

// NextUnlockedLevel returns the unlocked level after a match against tier.
// Only a win against the current frontier (or beyond) moves it.
func NextUnlockedLevel(unlocked int, tier ai.Tier, won bool) int {
	if !won || int(tier) < unlocked || unlocked >= MaxLevel {
		return unlocked
	}
	return unlocked + 1
}

// Allowed reports whether tier may be played at the unlocked level.
func Allowed(unlocked int, tier ai.Tier) bool {
	return tier >= ai.TierReactive && tier <= ai.TierTracking && int(tier) <= unlocked
}
