package models

import "phonicsquest/internal/content"

// ExerciseType selects which generator and round shape a session uses
type ExerciseType string

const (
	SoundIdentification  ExerciseType = "sound-identification"
	LetterIdentification ExerciseType = "letter-identification"
	PhonemeCount         ExerciseType = "phoneme-count"
	SoundManipulation    ExerciseType = "sound-manipulation"
	RhymeRecognition     ExerciseType = "rhyme-recognition"
)

// ExerciseTypes lists every supported exercise type
var ExerciseTypes = []ExerciseType{
	SoundIdentification,
	LetterIdentification,
	PhonemeCount,
	SoundManipulation,
	RhymeRecognition,
}

// Valid reports whether t is a known exercise type
func (t ExerciseType) Valid() bool {
	for _, known := range ExerciseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SoundMode selects which phoneme of a word is the answer
type SoundMode string

const (
	ModeBegin  SoundMode = "begin"
	ModeEnd    SoundMode = "end"
	ModeMiddle SoundMode = "middle"
)

// LetterCase selects how letters are displayed in a letter round
type LetterCase string

const (
	CaseUpper LetterCase = "uppercase"
	CaseLower LetterCase = "lowercase"
	CaseMixed LetterCase = "mixed"
)

// Distractor strategies recorded in round metadata
const (
	StrategyRandom     = "random"
	StrategyConfusable = "confusable"
)

// Difficulty bounds
const (
	MinDifficulty = 1
	MaxDifficulty = 10
)

// RoundMetadata describes how a round was generated
type RoundMetadata struct {
	WordFrequency      int    `json:"wordFrequency,omitempty"`
	DistractorStrategy string `json:"distractorStrategy"`
}

// Round is one presented exercise item
type Round interface {
	RoundID() string
	// CorrectAnswer is the option value a learner must select
	CorrectAnswer() string
	// OptionValues returns the comparable value of each option in display order
	OptionValues() []string
	// AttemptMode is the mode an attempt on this round is recorded under
	AttemptMode() string
}

// SoundRound asks for the beginning, middle or ending sound of a word
type SoundRound struct {
	ID         string        `json:"id"`
	Word       string        `json:"word"`
	Phonemes   []string      `json:"phonemes"`
	Mode       SoundMode     `json:"mode"`
	Options    []string      `json:"options"`
	Difficulty int           `json:"difficulty"`
	Metadata   RoundMetadata `json:"metadata"`
}

func (r SoundRound) RoundID() string { return r.ID }

func (r SoundRound) CorrectAnswer() string {
	return TargetPhoneme(r.Phonemes, r.Mode)
}

func (r SoundRound) OptionValues() []string {
	return append([]string(nil), r.Options...)
}

func (r SoundRound) AttemptMode() string { return string(r.Mode) }

// LetterOption bundles a letter with an example word and its picture
type LetterOption struct {
	Letter string `json:"letter"`
	Word   string `json:"word"`
	Emoji  string `json:"emoji"`
}

// LetterRound asks the learner to find a letter among visually similar ones
type LetterRound struct {
	ID           string         `json:"id"`
	TargetLetter string         `json:"targetLetter"`
	LetterName   string         `json:"letterName"`
	LetterSound  string         `json:"letterSound"`
	Options      []LetterOption `json:"options"`
	Case         LetterCase     `json:"case"`
	Difficulty   int            `json:"difficulty"`
	Metadata     RoundMetadata  `json:"metadata"`
}

func (r LetterRound) RoundID() string { return r.ID }

func (r LetterRound) CorrectAnswer() string { return r.TargetLetter }

func (r LetterRound) OptionValues() []string {
	values := make([]string, len(r.Options))
	for i, opt := range r.Options {
		values[i] = opt.Letter
	}
	return values
}

func (r LetterRound) AttemptMode() string { return string(r.Case) }

// TargetPhoneme returns the answer phoneme of a word for the given mode.
// The middle sound is the first vowel, or the second phoneme when the word has no vowel.
func TargetPhoneme(phonemes []string, mode SoundMode) string {
	if len(phonemes) == 0 {
		return ""
	}
	switch mode {
	case ModeBegin:
		return phonemes[0]
	case ModeEnd:
		return phonemes[len(phonemes)-1]
	}
	for _, p := range phonemes {
		if content.IsVowel(p) {
			return p
		}
	}
	if len(phonemes) > 1 {
		return phonemes[1]
	}
	return phonemes[0]
}
