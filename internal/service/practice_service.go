package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"phonicsquest/internal/event"
	"phonicsquest/internal/generator"
	"phonicsquest/internal/metrics"
	"phonicsquest/internal/models"
	"phonicsquest/internal/repository"
	"phonicsquest/internal/session"
	"phonicsquest/internal/validation"
)

// ErrSessionCompleted is returned when an attempt or transition targets a finished session
var ErrSessionCompleted = errors.New("session already completed")

// ReportSender delivers a completed session's results
type ReportSender interface {
	SendSessionReport(ctx context.Context, toEmail string, session *models.PracticeSession, summary models.SessionSummary) error
}

// CreateSessionRequest holds the fields accepted when starting a session
type CreateSessionRequest struct {
	ExerciseType models.ExerciseType `json:"exerciseType"`
	Difficulty   int                 `json:"difficulty"`
	TargetRounds int                 `json:"targetRounds,omitempty"`
	StudentID    string              `json:"studentId,omitempty"`
}

// SubmitAttemptRequest is one learner response. IsCorrect is optional and,
// when supplied, must agree with the selected and correct options.
type SubmitAttemptRequest struct {
	RoundID        string `json:"roundId"`
	SelectedOption string `json:"selectedOption"`
	CorrectOption  string `json:"correctOption"`
	IsCorrect      *bool  `json:"isCorrect,omitempty"`
	ResponseTimeMs int    `json:"responseTimeMs"`
	Mode           string `json:"mode"`
	Retries        int    `json:"retries"`
}

// AttemptResult carries the recorded attempt, plus the summary when the
// attempt completed the session
type AttemptResult struct {
	Attempt        models.Attempt         `json:"attempt"`
	SessionSummary *models.SessionSummary `json:"sessionSummary,omitempty"`
}

// SessionState is a session together with its elapsed time
type SessionState struct {
	Session   *models.PracticeSession `json:"session"`
	ElapsedMs int64                   `json:"elapsedMs"`
}

// PracticeService handles practice session business logic
type PracticeService struct {
	sessions  repository.SessionStore
	progress  *ProgressService
	publisher event.Publisher
	reporter  ReportSender
	reportTo  string
	now       session.Clock
	locks     stripedLocks
}

// NewPracticeService creates a new practice service
func NewPracticeService(sessions repository.SessionStore, progress *ProgressService, publisher event.Publisher, reporter ReportSender, reportTo string) *PracticeService {
	return &PracticeService{
		sessions:  sessions,
		progress:  progress,
		publisher: publisher,
		reporter:  reporter,
		reportTo:  reportTo,
		now:       time.Now,
	}
}

// lock serializes mutations of one session
func (s *PracticeService) lock(sessionID string) func() {
	return s.locks.lock(sessionID)
}

// CreateSession starts a new practice session
func (s *PracticeService) CreateSession(req CreateSessionRequest) (*models.PracticeSession, error) {
	if err := validation.ValidateExerciseType(req.ExerciseType); err != nil {
		return nil, err
	}
	if err := validation.ValidateDifficulty(req.Difficulty); err != nil {
		return nil, err
	}

	targetRounds := req.TargetRounds
	if targetRounds == 0 {
		targetRounds = models.DefaultTargetRounds
	}

	studentID := req.StudentID
	if studentID == "" {
		studentID = models.AnonymousStudent
	}

	ctrl := session.NewController(s.now)
	if _, err := ctrl.Start("session-"+uuid.NewString(), targetRounds); err != nil {
		return nil, err
	}

	sess := &models.PracticeSession{
		StudentID:    studentID,
		ExerciseType: req.ExerciseType,
		Difficulty:   req.Difficulty,
	}
	applySnapshot(sess, ctrl.Snapshot())

	if err := s.sessions.PutSession(sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.SessionCreated(string(sess.ExerciseType))
	return sess, nil
}

// GetSession returns a session and how long it has been running
func (s *PracticeService) GetSession(sessionID string) (*SessionState, error) {
	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	ctrl := s.controllerFor(sess)
	return &SessionState{
		Session:   sess,
		ElapsedMs: ctrl.Elapsed().Milliseconds(),
	}, nil
}

// GetRounds returns the session's rounds. Repeated calls return identical rounds.
func (s *PracticeService) GetRounds(sessionID string) ([]models.Round, error) {
	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return generator.ForSession(sess.ID, sess.ExerciseType, sess.Difficulty, sess.TargetRounds)
}

// SubmitAttempt records an attempt and advances the session by one round
func (s *PracticeService) SubmitAttempt(ctx context.Context, sessionID string, req SubmitAttemptRequest) (*AttemptResult, error) {
	if err := validateAttempt(req); err != nil {
		return nil, err
	}

	unlock := s.lock(sessionID)
	defer unlock()

	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == models.StatusCompleted {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionCompleted)
	}
	if sess.Status == models.StatusPaused {
		return nil, fmt.Errorf("session %s is paused: %w", sessionID, session.ErrInvalidTransition)
	}

	attempt := models.Attempt{
		ID:             "attempt-" + uuid.NewString(),
		SessionID:      sess.ID,
		RoundID:        req.RoundID,
		SelectedOption: req.SelectedOption,
		CorrectOption:  req.CorrectOption,
		IsCorrect:      req.SelectedOption == req.CorrectOption,
		ResponseTimeMs: req.ResponseTimeMs,
		Mode:           req.Mode,
		Retries:        req.Retries,
		Timestamp:      s.now(),
	}

	ctrl := s.controllerFor(sess)
	state, err := ctrl.RoundComplete()
	if err != nil {
		return nil, err
	}
	applySnapshot(sess, ctrl.Snapshot())

	// the log and the round count move together
	if err := s.sessions.RecordAttempt(&attempt, sess); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}
	metrics.AttemptRecorded(attempt.Mode, attempt.IsCorrect, attempt.ResponseTimeMs)

	result := &AttemptResult{Attempt: attempt}
	if state == session.Completed {
		summary, err := s.summarize(sess.ID)
		if err != nil {
			return nil, err
		}
		s.sessionCompleted(ctx, sess, summary)
		result.SessionSummary = &summary
	}

	return result, nil
}

// GetSummary recomputes the session summary from its stored attempts
func (s *PracticeService) GetSummary(sessionID string) (*models.SessionSummary, error) {
	if _, err := s.sessions.GetSession(sessionID); err != nil {
		return nil, err
	}
	summary, err := s.summarize(sessionID)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// PauseSession freezes the session's elapsed time
func (s *PracticeService) PauseSession(sessionID string) (*models.PracticeSession, error) {
	return s.transition(sessionID, (*session.Controller).Pause)
}

// ResumeSession continues a paused session
func (s *PracticeService) ResumeSession(sessionID string) (*models.PracticeSession, error) {
	return s.transition(sessionID, (*session.Controller).Resume)
}

func (s *PracticeService) transition(sessionID string, fn func(*session.Controller) (session.State, error)) (*models.PracticeSession, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == models.StatusCompleted {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionCompleted)
	}

	ctrl := s.controllerFor(sess)
	if _, err := fn(ctrl); err != nil {
		return nil, err
	}
	applySnapshot(sess, ctrl.Snapshot())
	if err := s.sessions.PutSession(sess); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return sess, nil
}

// EndSession completes an in-progress session early and returns its summary
func (s *PracticeService) EndSession(ctx context.Context, sessionID string) (*models.SessionSummary, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == models.StatusCompleted {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionCompleted)
	}

	ctrl := s.controllerFor(sess)
	if _, err := ctrl.Complete(); err != nil {
		return nil, err
	}
	applySnapshot(sess, ctrl.Snapshot())
	if err := s.sessions.PutSession(sess); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	summary, err := s.summarize(sess.ID)
	if err != nil {
		return nil, err
	}
	s.sessionCompleted(ctx, sess, summary)
	return &summary, nil
}

func (s *PracticeService) summarize(sessionID string) (models.SessionSummary, error) {
	attempts, err := s.sessions.ListAttempts(sessionID)
	if err != nil {
		return models.SessionSummary{}, err
	}
	return Summarize(sessionID, attempts), nil
}

// sessionCompleted runs the side effects of finishing a session. The session is
// already persisted, so failures here are logged and not returned.
func (s *PracticeService) sessionCompleted(ctx context.Context, sess *models.PracticeSession, summary models.SessionSummary) {
	log.Printf("Session completed: id=%s, correct=%d/%d, points=%d",
		sess.ID, summary.CorrectRounds, summary.TotalRounds, summary.PointsEarned)
	metrics.SessionCompleted(string(sess.ExerciseType))

	completedAt := s.now()
	if sess.CompletedAt != nil {
		completedAt = *sess.CompletedAt
	}

	err := s.publisher.PublishSessionCompleted(ctx, &event.SessionCompletedEvent{
		SessionID:     sess.ID,
		StudentID:     sess.StudentID,
		ExerciseType:  string(sess.ExerciseType),
		Difficulty:    sess.Difficulty,
		TotalRounds:   summary.TotalRounds,
		CorrectRounds: summary.CorrectRounds,
		Accuracy:      summary.Accuracy,
		PointsEarned:  summary.PointsEarned,
		MaxStreak:     summary.MaxStreak,
		CompletedAt:   completedAt,
	})
	if err != nil {
		log.Printf("Failed to publish session completed event: %v", err)
	}

	if err := s.reporter.SendSessionReport(ctx, s.reportTo, sess, summary); err != nil {
		log.Printf("Failed to send session report: %v", err)
	}

	// nothing was practiced, so there is no progress to record
	if summary.TotalRounds == 0 {
		return
	}
	if _, err := s.progress.RecordSession(ctx, sess.StudentID, string(sess.ExerciseType), summary, completedAt); err != nil {
		log.Printf("Failed to record progress: %v", err)
	}
}

func (s *PracticeService) controllerFor(sess *models.PracticeSession) *session.Controller {
	return session.Restore(session.Snapshot{
		SessionID:       sess.ID,
		State:           session.State(sess.Status),
		TargetRounds:    sess.TargetRounds,
		RoundsCompleted: sess.RoundsCompleted,
		StartedAt:       sess.StartedAt,
		PausedAt:        sess.PausedAt,
		CompletedAt:     sess.CompletedAt,
	}, s.now)
}

// applySnapshot copies the controller's state onto the stored session
func applySnapshot(sess *models.PracticeSession, snap session.Snapshot) {
	sess.ID = snap.SessionID
	sess.Status = models.SessionStatus(snap.State)
	sess.TargetRounds = snap.TargetRounds
	sess.RoundsCompleted = snap.RoundsCompleted
	sess.StartedAt = snap.StartedAt
	sess.PausedAt = snap.PausedAt
	sess.CompletedAt = snap.CompletedAt
}

func validateAttempt(req SubmitAttemptRequest) error {
	if err := validation.ValidateRequired("roundId", req.RoundID); err != nil {
		return err
	}
	if err := validation.ValidateRequired("selectedOption", req.SelectedOption); err != nil {
		return err
	}
	if err := validation.ValidateRequired("correctOption", req.CorrectOption); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("responseTimeMs", req.ResponseTimeMs); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("retries", req.Retries); err != nil {
		return err
	}
	if !models.ValidAttemptMode(req.Mode) {
		return validation.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %q", req.Mode)}
	}
	if req.IsCorrect != nil && *req.IsCorrect != (req.SelectedOption == req.CorrectOption) {
		return validation.ValidationError{Field: "isCorrect", Message: "does not match the selected and correct options"}
	}
	return nil
}
