// Package generator builds reproducible exercise rounds from the content library.
//
// Every generation call owns its own seeded *rand.Rand, so the same seed always
// yields the same rounds and concurrent calls never share random state.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"phonicsquest/internal/models"
	"phonicsquest/internal/validation"
)

// Difficulty buckets
const (
	easyMax   = 3
	mediumMax = 6
)

// maxConfusableDistractors caps how many distractors come from a confusable table
const maxConfusableDistractors = 2

// Seed derives a generation seed from a session id: the sum of its character codes
func Seed(sessionID string) int64 {
	var sum int64
	for _, r := range sessionID {
		sum += int64(r)
	}
	return sum
}

// Generate produces count rounds of the shape used by the exercise type.
// Letter identification uses letter rounds; every other type uses sound rounds.
func Generate(exerciseType models.ExerciseType, difficulty, count int, seed int64) ([]models.Round, error) {
	if err := validation.ValidateExerciseType(exerciseType); err != nil {
		return nil, err
	}

	if exerciseType == models.LetterIdentification {
		letters, err := LetterRounds(difficulty, count, seed)
		if err != nil {
			return nil, err
		}
		rounds := make([]models.Round, len(letters))
		for i := range letters {
			rounds[i] = letters[i]
		}
		return rounds, nil
	}

	sounds, err := SoundRounds(difficulty, count, seed)
	if err != nil {
		return nil, err
	}
	rounds := make([]models.Round, len(sounds))
	for i := range sounds {
		rounds[i] = sounds[i]
	}
	return rounds, nil
}

// ForSession generates the rounds for a session. Repeated calls with the same
// session id, difficulty and count return identical rounds.
func ForSession(sessionID string, exerciseType models.ExerciseType, difficulty, count int) ([]models.Round, error) {
	return Generate(exerciseType, difficulty, count, Seed(sessionID))
}

// Unseeded generates a fresh set of rounds seeded from the current time
func Unseeded(exerciseType models.ExerciseType, difficulty, count int) ([]models.Round, error) {
	return Generate(exerciseType, difficulty, count, time.Now().UnixMilli())
}

func validateRequest(difficulty, count int) error {
	if err := validation.ValidateDifficulty(difficulty); err != nil {
		return err
	}
	return validation.ValidateNonNegative("count", count)
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func roundID(seed int64, index int) string {
	return fmt.Sprintf("round-%d-%d", seed, index)
}

// optionCount is the total number of options, answer included
func optionCount(difficulty int) int {
	switch {
	case difficulty <= easyMax:
		return 3
	case difficulty <= mediumMax:
		return 4
	default:
		return 5
	}
}

// usesConfusables reports whether distractors come from the confusable tables (hard bucket)
func usesConfusables(difficulty int) bool {
	return difficulty > mediumMax
}

func strategy(confusable bool) string {
	if confusable {
		return models.StrategyConfusable
	}
	return models.StrategyRandom
}

// pickDistractors returns up to n values distinct from target: first up to
// maxConfusableDistractors entries from confusables, then a shuffled fill from pool.
func pickDistractors(rng *rand.Rand, target string, confusables, pool []string, n int) []string {
	chosen := make([]string, 0, n)
	taken := map[string]bool{target: true}

	limit := min(maxConfusableDistractors, n)
	for _, c := range confusables {
		if len(chosen) >= limit {
			break
		}
		if taken[c] {
			continue
		}
		chosen = append(chosen, c)
		taken[c] = true
	}

	remaining := make([]string, 0, len(pool))
	for _, p := range pool {
		if !taken[p] {
			remaining = append(remaining, p)
		}
	}
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	for _, p := range remaining {
		if len(chosen) >= n {
			break
		}
		if taken[p] {
			continue
		}
		chosen = append(chosen, p)
		taken[p] = true
	}

	return chosen
}
