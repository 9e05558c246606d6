package pedagogy

import "sort"

// HintLibraryVersion identifies the revision of the built-in hint content
const HintLibraryVersion = "1.0.0"

// HintVisuals are presentation flags a client may honour when showing a hint
type HintVisuals struct {
	HighlightGrapheme string `json:"highlightGrapheme,omitempty"`
	ShowMouthShape    bool   `json:"showMouthShape,omitempty"`
	SlowAudio         bool   `json:"slowAudio,omitempty"`
	SegmentBlend      bool   `json:"segmentBlend,omitempty"`
}

// Hint is a short, spoken-friendly cue for one or more error types.
// Lower priority values come earlier in the cueing ladder.
type Hint struct {
	ID         string       `json:"id"`
	Domain     SkillDomain  `json:"domain"`
	ErrorTypes []ErrorType  `json:"errorTypes"`
	StageID    string       `json:"stageId,omitempty"`
	Priority   int          `json:"priority"`
	Text       string       `json:"text"`
	TTS        bool         `json:"tts"`
	Visuals    *HintVisuals `json:"visuals,omitempty"`
}

// Hints is the vetted hint library
var Hints = []Hint{
	{
		ID:         "gpc-vowel-cue-1",
		Domain:     DomainGPC,
		ErrorTypes: []ErrorType{VowelConfusion},
		Priority:   1,
		Text:       "Listen for the short /a/ like in 'cat'.",
		TTS:        true,
		Visuals:    &HintVisuals{SlowAudio: true, HighlightGrapheme: "a"},
	},
	{
		ID:         "gpc-vowel-cue-2",
		Domain:     DomainGPC,
		ErrorTypes: []ErrorType{VowelConfusion},
		Priority:   2,
		Text:       "Tap the vowel. Say its sound with me: /a/.",
		TTS:        true,
		Visuals:    &HintVisuals{SegmentBlend: true, HighlightGrapheme: "a"},
	},
	{
		ID:         "blending-omission-1",
		Domain:     DomainBlending,
		ErrorTypes: []ErrorType{PhonemeOmission, BlendOmission},
		Priority:   1,
		Text:       "Let's say every sound. No skipping! /c/.../a/.../t/.",
		TTS:        true,
		Visuals:    &HintVisuals{SegmentBlend: true},
	},
	{
		ID:         "blending-model-3",
		Domain:     DomainBlending,
		ErrorTypes: []ErrorType{PhonemeOmission, PhonemeOrder, BlendOmission},
		Priority:   3,
		Text:       "My turn first: c-a-t... 'cat'. Now your turn.",
		TTS:        true,
		Visuals:    &HintVisuals{SegmentBlend: true, SlowAudio: true},
	},
	{
		ID:         "decoding-grapheme-contrast-2",
		Domain:     DomainDecoding,
		ErrorTypes: []ErrorType{GraphemeMismatch, ConsonantConfusion},
		Priority:   2,
		Text:       "This letter makes /p/. You read /b/. Let's try again.",
		TTS:        true,
		Visuals:    &HintVisuals{HighlightGrapheme: "p"},
	},
	{
		ID:         "fluency-rate-fast-1",
		Domain:     DomainFluency,
		ErrorTypes: []ErrorType{RateTooFast},
		Priority:   1,
		Text:       "Slow and smooth. Touch each word as you read.",
		TTS:        true,
	},
}

// HintsFor returns the hints for a domain that address errorType, lowest priority first
func HintsFor(domain SkillDomain, errorType ErrorType) []Hint {
	var matches []Hint
	for _, h := range Hints {
		if h.Domain != domain {
			continue
		}
		for _, t := range h.ErrorTypes {
			if t == errorType {
				matches = append(matches, h)
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority < matches[j].Priority
	})
	return matches
}
