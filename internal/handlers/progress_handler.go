package handlers

import (
	"net/http"
	"strconv"
	"time"

	"phonicsquest/internal/service"
	"phonicsquest/internal/validation"
)

// ProgressHandler serves per-student skill progress and review schedules
type ProgressHandler struct {
	progressService *service.ProgressService
	now             func() time.Time
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, now: time.Now}
}

// ListProgress returns a student's skills. ?mastered=true limits it to mastered skills.
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	masteredOnly := false
	if v := r.URL.Query().Get("mastered"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondWithServiceError(w, "", validation.ValidationError{Field: "mastered", Message: "must be true or false"})
			return
		}
		masteredOnly = parsed
	}

	progress, err := h.progressService.ListProgress(r.PathValue("studentId"), masteredOnly)
	if err != nil {
		respondWithServiceError(w, "Failed to list progress", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

// DueReviews returns the skills due for review now, or at the RFC 3339 time in ?at=
func (h *ProgressHandler) DueReviews(w http.ResponseWriter, r *http.Request) {
	at := h.now()
	if v := r.URL.Query().Get("at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithServiceError(w, "", validation.ValidationError{Field: "at", Message: "must be an RFC 3339 timestamp"})
			return
		}
		at = parsed
	}

	due, err := h.progressService.DueForReview(r.PathValue("studentId"), at)
	if err != nil {
		respondWithServiceError(w, "Failed to list due reviews", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"reviews": due, "at": at})
}
