package services

import "solpin-escrow/models"

// rewardTable maps (duration, difficulty) to the payout multiplier.
// The table is total over the nine valid tier pairs and every entry is
// at least 1.0 (the stake itself always comes back on a win).
var rewardTable = map[models.Duration]map[models.Difficulty]float64{
	models.DurationShort: {
		models.DifficultyEasy:   1.2,
		models.DifficultyMedium: 1.4,
		models.DifficultyHard:   1.8,
	},
	models.DurationMedium: {
		models.DifficultyEasy:   1.5,
		models.DifficultyMedium: 1.8,
		models.DifficultyHard:   2.2,
	},
	models.DurationLong: {
		models.DifficultyEasy:   1.8,
		models.DifficultyMedium: 2.2,
		models.DifficultyHard:   2.5,
	},
}

// Multiplier returns the payout factor for a tier pair. Stake
// validation rejects unknown tiers before a session can exist, so the
// 1.0 fallback (stake back, no bonus) is never reached in practice.
func Multiplier(duration models.Duration, difficulty models.Difficulty) float64 {
	if row, ok := rewardTable[duration]; ok {
		if m, ok := row[difficulty]; ok {
			return m
		}
	}
	return 1.0
}
