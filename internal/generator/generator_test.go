package generator

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"phonicsquest/internal/content"
	"phonicsquest/internal/models"
	"phonicsquest/internal/validation"
)

func TestSeed(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		expected  int64
	}{
		{name: "empty", sessionID: "", expected: 0},
		{name: "single char", sessionID: "a", expected: 97},
		{name: "abc", sessionID: "abc", expected: 97 + 98 + 99},
		{name: "order does not matter", sessionID: "cba", expected: 97 + 98 + 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seed(tt.sessionID); got != tt.expected {
				t.Errorf("Seed(%q) = %d, want %d", tt.sessionID, got, tt.expected)
			}
		})
	}
}

func TestSoundRoundsDeterministic(t *testing.T) {
	for _, difficulty := range []int{1, 5, 9} {
		first, err := SoundRounds(difficulty, 8, 12345)
		if err != nil {
			t.Fatalf("SoundRounds() error = %v", err)
		}
		second, err := SoundRounds(difficulty, 8, 12345)
		if err != nil {
			t.Fatalf("SoundRounds() error = %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("difficulty %d: same seed produced different rounds", difficulty)
		}
	}
}

func TestSoundRoundsDifferentSeeds(t *testing.T) {
	a, _ := SoundRounds(5, 10, 1)
	b, _ := SoundRounds(5, 10, 2)
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds produced identical rounds")
	}
}

func TestSoundRoundsShape(t *testing.T) {
	tests := []struct {
		name        string
		difficulty  int
		wantOptions int
		wantModes   []models.SoundMode
		wantStrat   string
	}{
		{
			name:        "easy",
			difficulty:  2,
			wantOptions: 3,
			wantModes:   []models.SoundMode{models.ModeBegin, models.ModeBegin, models.ModeEnd},
			wantStrat:   models.StrategyRandom,
		},
		{
			name:        "medium",
			difficulty:  5,
			wantOptions: 4,
			wantModes:   []models.SoundMode{models.ModeBegin, models.ModeEnd, models.ModeMiddle},
			wantStrat:   models.StrategyRandom,
		},
		{
			name:        "hard",
			difficulty:  8,
			wantOptions: 5,
			wantModes:   []models.SoundMode{models.ModeBegin, models.ModeEnd, models.ModeMiddle, models.ModeMiddle},
			wantStrat:   models.StrategyConfusable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds, err := SoundRounds(tt.difficulty, 10, 777)
			if err != nil {
				t.Fatalf("SoundRounds() error = %v", err)
			}
			if len(rounds) != 10 {
				t.Fatalf("got %d rounds, want 10", len(rounds))
			}

			seenWords := map[string]bool{}
			for i, r := range rounds {
				if seenWords[r.Word] {
					t.Errorf("word %q reused", r.Word)
				}
				seenWords[r.Word] = true

				if r.Mode != tt.wantModes[i%len(tt.wantModes)] {
					t.Errorf("round %d mode = %s, want %s", i, r.Mode, tt.wantModes[i%len(tt.wantModes)])
				}
				if len(r.Options) != tt.wantOptions {
					t.Errorf("round %d has %d options, want %d", i, len(r.Options), tt.wantOptions)
				}
				if r.Metadata.DistractorStrategy != tt.wantStrat {
					t.Errorf("round %d strategy = %s, want %s", i, r.Metadata.DistractorStrategy, tt.wantStrat)
				}
				if r.Difficulty != tt.difficulty {
					t.Errorf("round %d difficulty = %d", i, r.Difficulty)
				}
				assertAnswerOnce(t, r.Options, r.CorrectAnswer())
				assertNoDuplicates(t, r.Options)
			}
		})
	}
}

func TestSoundRoundsWordFilter(t *testing.T) {
	rounds, err := SoundRounds(1, 100, 99)
	if err != nil {
		t.Fatalf("SoundRounds() error = %v", err)
	}
	for _, r := range rounds {
		if len(r.Phonemes) > 3 {
			t.Errorf("easy round used %q with %d phonemes", r.Word, len(r.Phonemes))
		}
	}

	rounds, err = SoundRounds(10, 100, 99)
	if err != nil {
		t.Fatalf("SoundRounds() error = %v", err)
	}
	for _, r := range rounds {
		if r.Metadata.WordFrequency < content.FrequencyModerate {
			t.Errorf("hard round used common word %q", r.Word)
		}
	}
}

func TestSoundRoundsSmallPool(t *testing.T) {
	var poolSize int
	for _, w := range content.Words {
		if len(w.Phonemes) <= 3 && w.Frequency >= content.FrequencyCommon {
			poolSize++
		}
	}

	rounds, err := SoundRounds(1, poolSize+20, 5)
	if err != nil {
		t.Fatalf("SoundRounds() error = %v", err)
	}
	if len(rounds) != poolSize {
		t.Errorf("got %d rounds, want pool size %d", len(rounds), poolSize)
	}
}

func TestSoundRoundsConfusableDistractors(t *testing.T) {
	rounds, err := SoundRounds(9, 20, 4242)
	if err != nil {
		t.Fatalf("SoundRounds() error = %v", err)
	}
	for _, r := range rounds {
		target := r.CorrectAnswer()
		confusables := content.ConfusablePhonemes[target]
		for i := 0; i < len(confusables) && i < maxConfusableDistractors; i++ {
			if !contains(r.Options, confusables[i]) {
				t.Errorf("round for %q (target %s) missing confusable %s in %v", r.Word, target, confusables[i], r.Options)
			}
		}
	}
}

func TestSoundRoundsDistractorPool(t *testing.T) {
	rounds, err := SoundRounds(4, 20, 31)
	if err != nil {
		t.Fatalf("SoundRounds() error = %v", err)
	}
	for _, r := range rounds {
		wantVowel := content.IsVowel(r.CorrectAnswer())
		for _, opt := range r.Options {
			if content.IsVowel(opt) != wantVowel {
				t.Errorf("round %s mixes vowels and consonants: %v", r.ID, r.Options)
			}
		}
	}
}

func TestSoundRoundsZeroCount(t *testing.T) {
	rounds, err := SoundRounds(3, 0, 1)
	if err != nil {
		t.Fatalf("SoundRounds() error = %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("got %d rounds, want 0", len(rounds))
	}
}

func TestInvalidRequests(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		count      int
	}{
		{name: "difficulty zero", difficulty: 0, count: 5},
		{name: "difficulty eleven", difficulty: 11, count: 5},
		{name: "negative count", difficulty: 3, count: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SoundRounds(tt.difficulty, tt.count, 1); !validation.IsValidation(err) {
				t.Errorf("SoundRounds() error = %v, want validation error", err)
			}
			if _, err := LetterRounds(tt.difficulty, tt.count, 1); !validation.IsValidation(err) {
				t.Errorf("LetterRounds() error = %v, want validation error", err)
			}
		})
	}
}

func TestLetterRoundsShape(t *testing.T) {
	tests := []struct {
		name        string
		difficulty  int
		wantOptions int
		wantCases   []models.LetterCase
		allowed     []string
	}{
		{
			name:        "easy uppercase only",
			difficulty:  1,
			wantOptions: 3,
			wantCases:   []models.LetterCase{models.CaseUpper, models.CaseUpper, models.CaseUpper},
			allowed:     content.EasyLetters,
		},
		{
			name:        "medium",
			difficulty:  4,
			wantOptions: 4,
			wantCases:   []models.LetterCase{models.CaseUpper, models.CaseLower, models.CaseUpper},
			allowed:     append(append([]string{}, content.EasyLetters...), content.MediumLetters...),
		},
		{
			name:        "hard mixed",
			difficulty:  10,
			wantOptions: 5,
			wantCases:   []models.LetterCase{models.CaseUpper, models.CaseLower, models.CaseMixed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds, err := LetterRounds(tt.difficulty, 6, 2024)
			if err != nil {
				t.Fatalf("LetterRounds() error = %v", err)
			}
			if len(rounds) != 6 {
				t.Fatalf("got %d rounds, want 6", len(rounds))
			}

			seen := map[string]bool{}
			for i, r := range rounds {
				upper := strings.ToUpper(r.TargetLetter)
				if seen[upper] {
					t.Errorf("letter %s reused", upper)
				}
				seen[upper] = true

				if tt.allowed != nil && !contains(tt.allowed, upper) {
					t.Errorf("letter %s outside tier %v", upper, tt.allowed)
				}
				if r.Case != tt.wantCases[i%len(tt.wantCases)] {
					t.Errorf("round %d case = %s, want %s", i, r.Case, tt.wantCases[i%len(tt.wantCases)])
				}
				if r.Case == models.CaseUpper && r.TargetLetter != upper {
					t.Errorf("uppercase round shows %q", r.TargetLetter)
				}
				if r.Case != models.CaseUpper && r.TargetLetter != strings.ToLower(r.TargetLetter) {
					t.Errorf("%s round shows %q", r.Case, r.TargetLetter)
				}
				if !strings.HasSuffix(r.LetterName, " "+upper) {
					t.Errorf("letter name %q does not name %s", r.LetterName, upper)
				}
				if len(r.Options) != tt.wantOptions {
					t.Errorf("round %d has %d options, want %d", i, len(r.Options), tt.wantOptions)
				}

				values := r.OptionValues()
				assertAnswerOnce(t, values, r.TargetLetter)
				assertNoDuplicates(t, values)
				for _, opt := range r.Options {
					if opt.Word == "" || opt.Emoji == "" {
						t.Errorf("option %q missing example word", opt.Letter)
					}
				}
			}
		})
	}
}

func TestLetterRoundsSmallTier(t *testing.T) {
	rounds, err := LetterRounds(2, 50, 8)
	if err != nil {
		t.Fatalf("LetterRounds() error = %v", err)
	}
	if len(rounds) != len(content.EasyLetters) {
		t.Errorf("got %d rounds, want %d", len(rounds), len(content.EasyLetters))
	}
}

func TestForSession(t *testing.T) {
	first, err := ForSession("session-abc", models.SoundIdentification, 4, 10)
	if err != nil {
		t.Fatalf("ForSession() error = %v", err)
	}
	second, err := ForSession("session-abc", models.SoundIdentification, 4, 10)
	if err != nil {
		t.Fatalf("ForSession() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same session id produced different rounds")
	}

	seed := Seed("session-abc")
	for i, r := range first {
		if _, ok := r.(models.SoundRound); !ok {
			t.Fatalf("round %d is %T, want SoundRound", i, r)
		}
		if want := roundID(seed, i); r.RoundID() != want {
			t.Errorf("round %d id = %s, want %s", i, r.RoundID(), want)
		}
	}

	letters, err := ForSession("session-abc", models.LetterIdentification, 4, 5)
	if err != nil {
		t.Fatalf("ForSession() error = %v", err)
	}
	for i, r := range letters {
		if _, ok := r.(models.LetterRound); !ok {
			t.Errorf("round %d is %T, want LetterRound", i, r)
		}
	}

	if _, err := ForSession("session-abc", "hangman", 4, 5); !validation.IsValidation(err) {
		t.Errorf("unknown exercise type error = %v, want validation error", err)
	}
}

func TestForSessionConcurrent(t *testing.T) {
	want, err := ForSession("session-concurrent", models.RhymeRecognition, 7, 10)
	if err != nil {
		t.Fatalf("ForSession() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ForSession("session-concurrent", models.RhymeRecognition, 7, 10)
			if err != nil || !reflect.DeepEqual(got, want) {
				errs <- "concurrent generation diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func TestUnseeded(t *testing.T) {
	rounds, err := Unseeded(models.SoundIdentification, 3, 5)
	if err != nil {
		t.Fatalf("Unseeded() error = %v", err)
	}
	if len(rounds) != 5 {
		t.Errorf("got %d rounds, want 5", len(rounds))
	}
}

func assertAnswerOnce(t *testing.T, options []string, answer string) {
	t.Helper()
	count := 0
	for _, o := range options {
		if o == answer {
			count++
		}
	}
	if count != 1 {
		t.Errorf("answer %q appears %d times in %v", answer, count, options)
	}
}

func assertNoDuplicates(t *testing.T, options []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, o := range options {
		if seen[o] {
			t.Errorf("duplicate option %q in %v", o, options)
		}
		seen[o] = true
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
