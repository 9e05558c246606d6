package repository

import (
	"errors"

	"phonicsquest/internal/models"
)

// ErrNotFound is returned when a session or progress record does not exist
var ErrNotFound = errors.New("not found")

// SessionStore persists practice sessions and their ordered attempt logs
type SessionStore interface {
	GetSession(sessionID string) (*models.PracticeSession, error)
	// PutSession inserts the session or replaces the stored copy
	PutSession(session *models.PracticeSession) error
	// AppendAttempt adds an attempt to the end of its session's log
	AppendAttempt(attempt *models.Attempt) error
	// ListAttempts returns a session's attempts in submission order
	ListAttempts(sessionID string) ([]models.Attempt, error)
	// RecordAttempt appends the attempt and saves the session it advanced as
	// one write: either both are stored or neither is
	RecordAttempt(attempt *models.Attempt, session *models.PracticeSession) error
}

// ProgressStore persists per-student skill progress
type ProgressStore interface {
	GetProgress(studentID, skillID string) (*models.SkillProgress, error)
	PutProgress(progress *models.SkillProgress) error
	// ListProgress returns a student's skills ordered by next review time
	ListProgress(studentID string, masteredOnly bool) ([]models.SkillProgress, error)
	// UpdateProgress reads one record, passes it to update (nil when there is
	// none yet) and stores the result, with no other update to the same record
	// in between. Nothing is stored when update returns an error.
	UpdateProgress(studentID, skillID string, update ProgressUpdate) (*models.SkillProgress, error)
}

// ProgressUpdate computes the new progress record from the stored one
type ProgressUpdate func(current *models.SkillProgress) (*models.SkillProgress, error)
