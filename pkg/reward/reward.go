// Package reward implements the deterministic XP and level formulas.
// This is a pure package - no I/O, no clock, no store access - so the
// same inputs always yield the same award.
package reward

import "math"

const (
	// baseXP is the XP granted before multipliers.
	baseXP = 50

	// Local scarcity tiers by the number of prior discoveries of the
	// species in the region.
	firstSightingMultiplier = 5.0
	earlySightingMultiplier = 2.0
	commonSightingMultiplier = 1.0

	// earlySightingLimit is the prior count below which a sighting
	// still counts as early.
	earlySightingLimit = 10

	// xpPerLevel is the XP span of one level.
	xpPerLevel = 1000

	// Care-verification awards.
	TaskCompleteXP  = 50
	CheckinXP       = 20
	CaretakerPoints = 10
)

// ComputeXP converts the classifier's global rarity score (0..10) and
// the prior local discovery count into the earned XP and the combined
// multiplier frozen on the discovery record.
func ComputeXP(globalRarityScore float64, priorLocalCount int) (int, float64) {
	general := math.Max(1, globalRarityScore)

	local := commonSightingMultiplier
	switch {
	case priorLocalCount == 0:
		local = firstSightingMultiplier
	case priorLocalCount < earlySightingLimit:
		local = earlySightingMultiplier
	}

	multiplier := general * local
	xp := int(math.Floor(baseXP * multiplier))
	return xp, multiplier
}

// LevelFor derives the level from a cumulative XP total. Level is
// never stored independently of XP; it must equal this formula for
// the stored total at all times.
func LevelFor(totalXP int) int {
	return 1 + totalXP/xpPerLevel
}
