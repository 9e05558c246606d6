package handlers

import (
	"net/http"

	"phonicsquest/internal/models"
	"phonicsquest/internal/service"
)

// PracticeHandler handles practice session HTTP requests
type PracticeHandler struct {
	practiceService *service.PracticeService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// RoundsResponse is returned when fetching a session's rounds
type RoundsResponse struct {
	Rounds    []models.Round `json:"rounds"`
	SessionID string         `json:"sessionId"`
}

// CreateSession starts a new practice session
func (h *PracticeHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	session, err := h.practiceService.CreateSession(req)
	if err != nil {
		respondWithServiceError(w, "Failed to create session", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}

// GetSession returns a session with its elapsed time
func (h *PracticeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.practiceService.GetSession(r.PathValue("sessionId"))
	if err != nil {
		respondWithServiceError(w, "Failed to get session", err)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

// GetRounds returns the session's rounds
func (h *PracticeHandler) GetRounds(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	rounds, err := h.practiceService.GetRounds(sessionID)
	if err != nil {
		respondWithServiceError(w, "Failed to generate rounds", err)
		return
	}

	respondWithJSON(w, http.StatusOK, RoundsResponse{Rounds: rounds, SessionID: sessionID})
}

// SubmitAttempt records a learner's answer
func (h *PracticeHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitAttemptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	result, err := h.practiceService.SubmitAttempt(r.Context(), r.PathValue("sessionId"), req)
	if err != nil {
		respondWithServiceError(w, "Failed to submit attempt", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// GetSummary returns the session summary computed from stored attempts
func (h *PracticeHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.practiceService.GetSummary(r.PathValue("sessionId"))
	if err != nil {
		respondWithServiceError(w, "Failed to get summary", err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// PauseSession pauses an in-progress session
func (h *PracticeHandler) PauseSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.practiceService.PauseSession(r.PathValue("sessionId"))
	if err != nil {
		respondWithServiceError(w, "Failed to pause session", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

// ResumeSession resumes a paused session
func (h *PracticeHandler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.practiceService.ResumeSession(r.PathValue("sessionId"))
	if err != nil {
		respondWithServiceError(w, "Failed to resume session", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

// CompleteSession ends a session early
func (h *PracticeHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	summary, err := h.practiceService.EndSession(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		respondWithServiceError(w, "Failed to complete session", err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
