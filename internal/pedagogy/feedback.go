package pedagogy

import "strings"

// CueStep is one rung of the cueing ladder
type CueStep string

const (
	StepSpecificPrompt CueStep = "specific-prompt"
	StepScaffold       CueStep = "scaffold"
	StepModel          CueStep = "model"
	StepContrast       CueStep = "contrast"
	StepRetry          CueStep = "retry"
	StepStepBack       CueStep = "step-back"
)

// Cueing ladder thresholds
const (
	MaxRetriesBeforeModel   = 2
	MaxErrorsBeforeStepBack = 3
)

// FeedbackState is what the ladder knows about the learner's current item
type FeedbackState struct {
	AttemptCount      int               `json:"attemptCount"`
	ConsecutiveErrors int               `json:"consecutiveErrors"`
	LastError         *ErrorObservation `json:"lastError,omitempty"`
	StageID           string            `json:"stageId,omitempty"`
}

// FeedbackAction is the chosen cue and the hint to present with it, if any
type FeedbackAction struct {
	Step CueStep `json:"step"`
	Hint *Hint   `json:"hint,omitempty"`
}

// SelectFeedbackAction picks the next cue. Help grows more specific with each
// consecutive error until the learner is stepped back to an easier item.
// Missing hints degrade to a plain retry.
func SelectFeedbackAction(state FeedbackState) FeedbackAction {
	if state.LastError == nil {
		return FeedbackAction{Step: StepRetry}
	}

	hints := HintsFor(state.LastError.Domain, state.LastError.Type)

	switch {
	case state.ConsecutiveErrors == 0:
		return withHint(StepSpecificPrompt, hints, 0)
	case state.ConsecutiveErrors < MaxRetriesBeforeModel:
		return withHint(StepScaffold, hints, 1, 0)
	case state.ConsecutiveErrors == MaxRetriesBeforeModel:
		return withHint(StepModel, hints, 2, 1, 0)
	case state.ConsecutiveErrors >= MaxErrorsBeforeStepBack:
		return FeedbackAction{Step: StepStepBack}
	}

	for i := range hints {
		if strings.Contains(hints[i].ID, "contrast") {
			return FeedbackAction{Step: StepContrast, Hint: &hints[i]}
		}
	}
	return FeedbackAction{Step: StepRetry}
}

// withHint uses the first of the preferred hint positions that exists
func withHint(step CueStep, hints []Hint, preferred ...int) FeedbackAction {
	for _, i := range preferred {
		if i < len(hints) {
			return FeedbackAction{Step: step, Hint: &hints[i]}
		}
	}
	return FeedbackAction{Step: StepRetry}
}
