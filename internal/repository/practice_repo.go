package repository

import (
	"database/sql"
	"fmt"
	"time"

	"phonicsquest/internal/database"
	"phonicsquest/internal/models"
)

// PracticeRepository handles practice session database operations
type PracticeRepository struct {
	db database.DBTX
}

// NewPracticeRepository creates a new practice repository
func NewPracticeRepository(db database.DBTX) *PracticeRepository {
	return &PracticeRepository{db: db}
}

// GetSession retrieves a practice session by ID
func (r *PracticeRepository) GetSession(sessionID string) (*models.PracticeSession, error) {
	query := `
		SELECT id, student_id, exercise_type, difficulty, target_rounds, rounds_completed,
		       status, started_at, paused_at, completed_at
		FROM practice_sessions
		WHERE id = ?
	`

	session := &models.PracticeSession{}
	var pausedAt, completedAt sql.NullTime

	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.StudentID,
		&session.ExerciseType,
		&session.Difficulty,
		&session.TargetRounds,
		&session.RoundsCompleted,
		&session.Status,
		&session.StartedAt,
		&pausedAt,
		&completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if pausedAt.Valid {
		session.PausedAt = &pausedAt.Time
	}
	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}

	return session, nil
}

// PutSession updates the session row, inserting it when it does not exist yet
func (r *PracticeRepository) PutSession(session *models.PracticeSession) error {
	update := `
		UPDATE practice_sessions
		SET student_id = ?, exercise_type = ?, difficulty = ?, target_rounds = ?,
		    rounds_completed = ?, status = ?, started_at = ?, paused_at = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(update,
		session.StudentID, session.ExerciseType, session.Difficulty, session.TargetRounds,
		session.RoundsCompleted, session.Status, session.StartedAt,
		nullTime(session.PausedAt), nullTime(session.CompletedAt),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	insert := `
		INSERT INTO practice_sessions (id, student_id, exercise_type, difficulty, target_rounds,
		                               rounds_completed, status, started_at, paused_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(insert,
		session.ID, session.StudentID, session.ExerciseType, session.Difficulty, session.TargetRounds,
		session.RoundsCompleted, session.Status, session.StartedAt,
		nullTime(session.PausedAt), nullTime(session.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// AppendAttempt records an attempt at the end of its session's log
func (r *PracticeRepository) AppendAttempt(attempt *models.Attempt) error {
	var exists int
	err := r.db.QueryRow("SELECT COUNT(*) FROM practice_sessions WHERE id = ?", attempt.SessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("session %s: %w", attempt.SessionID, ErrNotFound)
	}

	query := `
		INSERT INTO attempts (attempt_id, session_id, round_id, selected_option, correct_option,
		                      is_correct, response_time_ms, mode, retries, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecReturningID(query,
		attempt.ID, attempt.SessionID, attempt.RoundID, attempt.SelectedOption, attempt.CorrectOption,
		attempt.IsCorrect, attempt.ResponseTimeMs, attempt.Mode, attempt.Retries, attempt.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

// RecordAttempt appends the attempt and saves the session in one transaction
func (r *PracticeRepository) RecordAttempt(attempt *models.Attempt, session *models.PracticeSession) error {
	return inTx(r.db, func(tx database.DBTX) error {
		repo := NewPracticeRepository(tx)
		if err := repo.AppendAttempt(attempt); err != nil {
			return err
		}
		return repo.PutSession(session)
	})
}

// ListAttempts retrieves all attempts for a session in submission order
func (r *PracticeRepository) ListAttempts(sessionID string) ([]models.Attempt, error) {
	if _, err := r.GetSession(sessionID); err != nil {
		return nil, err
	}

	query := `
		SELECT attempt_id, session_id, round_id, selected_option, correct_option,
		       is_correct, response_time_ms, mode, retries, created_at
		FROM attempts
		WHERE session_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var attempt models.Attempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.SessionID,
			&attempt.RoundID,
			&attempt.SelectedOption,
			&attempt.CorrectOption,
			&attempt.IsCorrect,
			&attempt.ResponseTimeMs,
			&attempt.Mode,
			&attempt.Retries,
			&attempt.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}

// nullTime maps an optional timestamp to a nullable column value
func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
