package generator

import (
	"math/rand"

	"phonicsquest/internal/content"
	"phonicsquest/internal/models"
)

// LetterRounds generates count letter-identification rounds for a difficulty from a seed.
// When the letter tier is smaller than count, fewer rounds are returned.
func LetterRounds(difficulty, count int, seed int64) ([]models.LetterRound, error) {
	if err := validateRequest(difficulty, count); err != nil {
		return nil, err
	}

	rng := newRand(seed)
	letters := selectLetters(rng, difficulty, count)
	cases := letterCases(difficulty)
	confusable := usesConfusables(difficulty)
	distractorCount := optionCount(difficulty) - 1

	rounds := make([]models.LetterRound, 0, len(letters))
	for i, letter := range letters {
		letterCase := cases[i%len(cases)]
		target := displayGlyph(letter, letterCase)

		var confusables []string
		if confusable {
			confusables = content.ConfusableLetters[target]
		}
		distractors := pickDistractors(rng, target, confusables, glyphPool(letterCase), distractorCount)

		options := make([]models.LetterOption, 0, len(distractors)+1)
		options = append(options, letterOption(target))
		for _, glyph := range distractors {
			options = append(options, letterOption(glyph))
		}
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		rounds = append(rounds, models.LetterRound{
			ID:           roundID(seed, i),
			TargetLetter: target,
			LetterName:   letterName(letter, letterCase),
			LetterSound:  letter.CommonSound,
			Options:      options,
			Case:         letterCase,
			Difficulty:   difficulty,
			Metadata: models.RoundMetadata{
				DistractorStrategy: strategy(confusable),
			},
		})
	}

	return rounds, nil
}

// selectLetters draws count distinct letters from the tiers unlocked at a difficulty
func selectLetters(rng *rand.Rand, difficulty, count int) []content.LetterData {
	allowed := map[string]bool{}
	tiers := [][]string{content.EasyLetters}
	if difficulty > easyMax {
		tiers = append(tiers, content.MediumLetters)
	}
	if difficulty > mediumMax {
		tiers = append(tiers, content.HardLetters)
	}
	for _, tier := range tiers {
		for _, l := range tier {
			allowed[l] = true
		}
	}

	available := make([]content.LetterData, 0, len(allowed))
	for _, l := range content.Alphabet {
		if allowed[l.Letter] {
			available = append(available, l)
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

// letterCases is the display case cycle: uppercase only at first, then lowercase, then mixed
func letterCases(difficulty int) []models.LetterCase {
	switch {
	case difficulty <= 2:
		return []models.LetterCase{models.CaseUpper, models.CaseUpper, models.CaseUpper}
	case difficulty <= 5:
		return []models.LetterCase{models.CaseUpper, models.CaseLower, models.CaseUpper}
	default:
		return []models.LetterCase{models.CaseUpper, models.CaseLower, models.CaseMixed}
	}
}

// displayGlyph is the uppercase glyph for uppercase rounds and the lowercase glyph otherwise
func displayGlyph(letter content.LetterData, c models.LetterCase) string {
	if c == models.CaseUpper {
		return letter.Uppercase
	}
	return letter.Lowercase
}

func glyphPool(c models.LetterCase) []string {
	pool := make([]string, len(content.Alphabet))
	for i, l := range content.Alphabet {
		pool[i] = displayGlyph(l, c)
	}
	return pool
}

func letterName(letter content.LetterData, c models.LetterCase) string {
	if c == models.CaseUpper {
		return "uppercase " + letter.Name
	}
	return "lowercase " + letter.Name
}

func letterOption(glyph string) models.LetterOption {
	data, ok := content.LookupLetter(glyph)
	if !ok {
		return models.LetterOption{Letter: glyph}
	}
	return models.LetterOption{
		Letter: glyph,
		Word:   data.Word,
		Emoji:  data.Emoji,
	}
}
