package repository

import (
	"database/sql"
	"fmt"

	"phonicsquest/internal/database"
	"phonicsquest/internal/models"
)

const progressColumns = `student_id, skill_id, attempts, correct, sessions, recent_accuracy,
	average_response_time_ms, mastery_level, review_interval_days,
	last_practiced, next_review_at, mastered, updated_at`

// ProgressRepository handles skill progress database operations
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetProgress retrieves one student's progress on one skill
func (r *ProgressRepository) GetProgress(studentID, skillID string) (*models.SkillProgress, error) {
	query := "SELECT " + progressColumns + " FROM skill_progress WHERE student_id = ? AND skill_id = ?"

	p, err := scanProgress(r.db.QueryRow(query, studentID, skillID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("progress %s/%s: %w", studentID, skillID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

// PutProgress inserts or replaces a progress row
func (r *ProgressRepository) PutProgress(p *models.SkillProgress) error {
	_, err := r.db.Exec(r.db.GetDialect().UpsertSkillProgressQuery(),
		p.StudentID, p.SkillID, p.Attempts, p.Correct, p.Sessions, p.RecentAccuracy,
		p.AverageResponseTimeMs, p.MasteryLevel, p.ReviewIntervalDays,
		p.LastPracticed, p.NextReviewAt, p.Mastered, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// UpdateProgress applies update to the locked row inside one transaction
func (r *ProgressRepository) UpdateProgress(studentID, skillID string, update ProgressUpdate) (*models.SkillProgress, error) {
	var updated *models.SkillProgress
	err := inTx(r.db, func(tx database.DBTX) error {
		query := "SELECT " + progressColumns + " FROM skill_progress WHERE student_id = ? AND skill_id = ?" +
			tx.GetDialect().ForUpdateClause()

		current, err := scanProgress(tx.QueryRow(query, studentID, skillID))
		if err == sql.ErrNoRows {
			current = nil
		} else if err != nil {
			return fmt.Errorf("failed to lock progress: %w", err)
		}

		next, err := update(current)
		if err != nil {
			return err
		}
		if err := NewProgressRepository(tx).PutProgress(next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListProgress returns a student's skills ordered by next review time
func (r *ProgressRepository) ListProgress(studentID string, masteredOnly bool) ([]models.SkillProgress, error) {
	query := "SELECT " + progressColumns + " FROM skill_progress WHERE student_id = ?"
	if masteredOnly {
		query += " AND mastered = " + r.db.GetDialect().BoolValue(true)
	}
	query += " ORDER BY next_review_at ASC, skill_id ASC"

	rows, err := r.db.Query(query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var list []models.SkillProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProgress(s scanner) (*models.SkillProgress, error) {
	p := &models.SkillProgress{}
	err := s.Scan(
		&p.StudentID,
		&p.SkillID,
		&p.Attempts,
		&p.Correct,
		&p.Sessions,
		&p.RecentAccuracy,
		&p.AverageResponseTimeMs,
		&p.MasteryLevel,
		&p.ReviewIntervalDays,
		&p.LastPracticed,
		&p.NextReviewAt,
		&p.Mastered,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
