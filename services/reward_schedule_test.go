package services

import (
	"testing"

	"solpin-escrow/models"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierTable(t *testing.T) {
	cases := []struct {
		duration   models.Duration
		difficulty models.Difficulty
		want       float64
	}{
		{models.DurationShort, models.DifficultyEasy, 1.2},
		{models.DurationShort, models.DifficultyMedium, 1.4},
		{models.DurationShort, models.DifficultyHard, 1.8},
		{models.DurationMedium, models.DifficultyEasy, 1.5},
		{models.DurationMedium, models.DifficultyMedium, 1.8},
		{models.DurationMedium, models.DifficultyHard, 2.2},
		{models.DurationLong, models.DifficultyEasy, 1.8},
		{models.DurationLong, models.DifficultyMedium, 2.2},
		{models.DurationLong, models.DifficultyHard, 2.5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Multiplier(tc.duration, tc.difficulty),
			"multiplier(%d, %s)", tc.duration, tc.difficulty)
	}
}

func TestMultiplierTotalAndBounded(t *testing.T) {
	durations := []models.Duration{models.DurationShort, models.DurationMedium, models.DurationLong}
	difficulties := []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}

	for _, d := range durations {
		for _, diff := range difficulties {
			m := Multiplier(d, diff)
			assert.GreaterOrEqual(t, m, 1.0, "multiplier(%d, %s)", d, diff)
		}
	}
}

func TestMultiplierDefensiveDefault(t *testing.T) {
	assert.Equal(t, 1.0, Multiplier(models.Duration(45), models.DifficultyEasy))
	assert.Equal(t, 1.0, Multiplier(models.DurationShort, models.Difficulty("nightmare")))
}
