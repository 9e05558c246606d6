// Package pedagogy holds the error taxonomy, the hint library, the cueing
// ladder and the mastery rules used to adapt practice to a learner.
package pedagogy

import (
	"fmt"

	"phonicsquest/internal/validation"
)

// SkillDomain is the skill area an error belongs to
type SkillDomain string

const (
	DomainPhonemeAwareness SkillDomain = "phoneme-awareness"
	DomainGPC              SkillDomain = "gpc" // grapheme-phoneme correspondence
	DomainBlending         SkillDomain = "blending"
	DomainDecoding         SkillDomain = "decoding"
	DomainFluency          SkillDomain = "fluency"
)

// ErrorType is a specific kind of learner error
type ErrorType string

const (
	SoundPositionWrong        ErrorType = "sound-position-wrong"
	PhonemeOmission           ErrorType = "phoneme-omission"
	PhonemeOrder              ErrorType = "phoneme-order"
	VowelConfusion            ErrorType = "vowel-confusion"
	ConsonantConfusion        ErrorType = "consonant-confusion"
	BlendOmission             ErrorType = "blend-omission"
	GraphemeMismatch          ErrorType = "grapheme-mismatch"
	IrregularWordMemorization ErrorType = "irregular-word-memorization"
	RateTooFast               ErrorType = "rate-too-fast"
	RateTooSlow               ErrorType = "rate-too-slow"
)

// DomainErrorTypes lists the error types each domain permits
var DomainErrorTypes = map[SkillDomain][]ErrorType{
	DomainPhonemeAwareness: {SoundPositionWrong, PhonemeOmission, PhonemeOrder},
	DomainGPC:              {GraphemeMismatch, VowelConfusion, ConsonantConfusion},
	DomainBlending:         {PhonemeOmission, PhonemeOrder, BlendOmission},
	DomainDecoding:         {GraphemeMismatch, VowelConfusion, ConsonantConfusion, BlendOmission, IrregularWordMemorization},
	DomainFluency:          {RateTooFast, RateTooSlow},
}

// Permits reports whether errorType is valid within domain
func Permits(domain SkillDomain, errorType ErrorType) bool {
	for _, t := range DomainErrorTypes[domain] {
		if t == errorType {
			return true
		}
	}
	return false
}

// ErrorObservation records one classified learner error
type ErrorObservation struct {
	Domain      SkillDomain    `json:"domain"`
	Type        ErrorType      `json:"type"`
	StageID     string         `json:"stageId,omitempty"`
	Target      string         `json:"target,omitempty"`
	AttemptText string         `json:"attemptText,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Validate rejects unknown domains and error types outside the domain's permitted set
func (o ErrorObservation) Validate() error {
	if _, ok := DomainErrorTypes[o.Domain]; !ok {
		return validation.ValidationError{Field: "domain", Message: fmt.Sprintf("unknown skill domain %q", o.Domain)}
	}
	if !Permits(o.Domain, o.Type) {
		return validation.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("error type %q is not permitted for domain %q", o.Type, o.Domain),
		}
	}
	return nil
}
