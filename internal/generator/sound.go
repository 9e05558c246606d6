package generator

import (
	"math/rand"

	"phonicsquest/internal/content"
	"phonicsquest/internal/models"
)

// SoundRounds generates count sound-identification rounds for a difficulty from a seed.
// When the filtered word pool is smaller than count, fewer rounds are returned.
func SoundRounds(difficulty, count int, seed int64) ([]models.SoundRound, error) {
	if err := validateRequest(difficulty, count); err != nil {
		return nil, err
	}

	rng := newRand(seed)
	words := selectWords(rng, difficulty, count)
	modes := soundModes(difficulty)
	confusable := usesConfusables(difficulty)
	distractorCount := optionCount(difficulty) - 1

	rounds := make([]models.SoundRound, 0, len(words))
	for i, word := range words {
		mode := modes[i%len(modes)]
		target := models.TargetPhoneme(word.Phonemes, mode)

		var confusables []string
		if confusable {
			confusables = content.ConfusablePhonemes[target]
		}
		pool := content.Consonants
		if content.IsVowel(target) {
			pool = content.Vowels
		}

		options := append([]string{target}, pickDistractors(rng, target, confusables, pool, distractorCount)...)
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		rounds = append(rounds, models.SoundRound{
			ID:         roundID(seed, i),
			Word:       word.Word,
			Phonemes:   append([]string(nil), word.Phonemes...),
			Mode:       mode,
			Options:    options,
			Difficulty: difficulty,
			Metadata: models.RoundMetadata{
				WordFrequency:      word.Frequency,
				DistractorStrategy: strategy(confusable),
			},
		})
	}

	return rounds, nil
}

// selectWords filters the pool by phoneme count and frequency, then draws
// count distinct words from it
func selectWords(rng *rand.Rand, difficulty, count int) []content.WordData {
	maxPhonemes, minFrequency := 6, content.FrequencyModerate
	switch {
	case difficulty <= easyMax:
		maxPhonemes, minFrequency = 3, content.FrequencyCommon
	case difficulty <= mediumMax:
		maxPhonemes, minFrequency = 4, content.FrequencyCommon
	}

	available := make([]content.WordData, 0, len(content.Words))
	for _, w := range content.Words {
		if len(w.Phonemes) <= maxPhonemes && w.Frequency >= minFrequency {
			available = append(available, w)
		}
	}

	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if count < len(available) {
		available = available[:count]
	}
	return available
}

// soundModes is the mode cycle applied round-robin: beginning sounds first at
// low difficulty, an even mix later
func soundModes(difficulty int) []models.SoundMode {
	switch {
	case difficulty <= easyMax:
		return []models.SoundMode{models.ModeBegin, models.ModeBegin, models.ModeEnd}
	case difficulty <= mediumMax:
		return []models.SoundMode{models.ModeBegin, models.ModeEnd, models.ModeMiddle}
	default:
		return []models.SoundMode{models.ModeBegin, models.ModeEnd, models.ModeMiddle, models.ModeMiddle}
	}
}
