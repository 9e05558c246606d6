package handlers

import (
	"net/http"

	"phonicsquest/internal/metrics"
	"phonicsquest/internal/pedagogy"
	"phonicsquest/internal/validation"
)

// FeedbackHandler serves the cueing ladder and the hint library
type FeedbackHandler struct{}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler() *FeedbackHandler {
	return &FeedbackHandler{}
}

// FeedbackResponse is the selected cue with the hint library version it came from
type FeedbackResponse struct {
	pedagogy.FeedbackAction
	HintLibraryVersion string `json:"hintLibraryVersion"`
}

// HintsResponse lists the hints for one error
type HintsResponse struct {
	Hints              []pedagogy.Hint `json:"hints"`
	HintLibraryVersion string          `json:"hintLibraryVersion"`
}

// SelectFeedback chooses the next cue for the learner's current item
func (h *FeedbackHandler) SelectFeedback(w http.ResponseWriter, r *http.Request) {
	var state pedagogy.FeedbackState
	if err := decodeJSON(w, r, &state); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	if err := validation.ValidateNonNegative("attemptCount", state.AttemptCount); err != nil {
		respondWithServiceError(w, "", err)
		return
	}
	if err := validation.ValidateNonNegative("consecutiveErrors", state.ConsecutiveErrors); err != nil {
		respondWithServiceError(w, "", err)
		return
	}
	if state.LastError != nil {
		if err := state.LastError.Validate(); err != nil {
			respondWithServiceError(w, "", err)
			return
		}
	}

	action := pedagogy.SelectFeedbackAction(state)
	metrics.FeedbackStep(string(action.Step))

	respondWithJSON(w, http.StatusOK, FeedbackResponse{
		FeedbackAction:     action,
		HintLibraryVersion: pedagogy.HintLibraryVersion,
	})
}

// ListHints returns the hints for a domain and error type, lowest priority first
func (h *FeedbackHandler) ListHints(w http.ResponseWriter, r *http.Request) {
	observation := pedagogy.ErrorObservation{
		Domain: pedagogy.SkillDomain(r.URL.Query().Get("domain")),
		Type:   pedagogy.ErrorType(r.URL.Query().Get("type")),
	}
	if err := observation.Validate(); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	respondWithJSON(w, http.StatusOK, HintsResponse{
		Hints:              pedagogy.HintsFor(observation.Domain, observation.Type),
		HintLibraryVersion: pedagogy.HintLibraryVersion,
	})
}
