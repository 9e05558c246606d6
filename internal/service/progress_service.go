package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"phonicsquest/internal/event"
	"phonicsquest/internal/metrics"
	"phonicsquest/internal/models"
	"phonicsquest/internal/pedagogy"
	"phonicsquest/internal/repository"
	"phonicsquest/internal/validation"
)

// ProgressService tracks per-skill metrics across sessions and schedules
// spaced reviews
type ProgressService struct {
	repo             repository.ProgressStore
	publisher        event.Publisher
	rule             pedagogy.MasteryRule
	baseIntervalDays int
	locks            stripedLocks
}

// NewProgressService creates a new progress service
func NewProgressService(repo repository.ProgressStore, publisher event.Publisher, rule pedagogy.MasteryRule, baseIntervalDays int) *ProgressService {
	if baseIntervalDays < 1 {
		baseIntervalDays = 1
	}
	return &ProgressService{
		repo:             repo,
		publisher:        publisher,
		rule:             rule,
		baseIntervalDays: baseIntervalDays,
	}
}

// RecordSession folds a finished session into the student's progress on a skill
// and schedules the next review. Mastery, once reached, is kept.
func (s *ProgressService) RecordSession(ctx context.Context, studentID, skillID string, summary models.SessionSummary, completedAt time.Time) (*models.SkillProgress, error) {
	if err := validation.ValidateRequired("studentId", studentID); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequired("skillId", skillID); err != nil {
		return nil, err
	}

	wasMastered := false
	unlock := s.locks.lock(progressKey(studentID, skillID))
	progress, err := s.repo.UpdateProgress(studentID, skillID, func(current *models.SkillProgress) (*models.SkillProgress, error) {
		if current == nil {
			current = &models.SkillProgress{
				StudentID:          studentID,
				SkillID:            skillID,
				ReviewIntervalDays: s.baseIntervalDays,
			}
		}
		wasMastered = current.Mastered
		s.applySession(current, summary, completedAt)
		return current, nil
	})
	unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}

	if progress.Mastered && !wasMastered {
		s.skillMastered(ctx, progress)
	}

	return progress, nil
}

// applySession folds one session's summary into p
func (s *ProgressService) applySession(p *models.SkillProgress, summary models.SessionSummary, completedAt time.Time) {
	// attempt-weighted running mean
	total := p.Attempts + summary.TotalRounds
	if total > 0 {
		p.AverageResponseTimeMs = (p.AverageResponseTimeMs*float64(p.Attempts) +
			summary.AverageResponseTime*float64(summary.TotalRounds)) / float64(total)
	}
	p.Attempts = total
	p.Correct += summary.CorrectRounds
	p.Sessions++
	p.RecentAccuracy = summary.Accuracy / 100
	p.MasteryLevel = summary.Accuracy
	p.LastPracticed = completedAt
	p.UpdatedAt = completedAt

	item := pedagogy.ReviewItem{
		SkillID:            p.SkillID,
		LastPracticed:      completedAt,
		MasteryLevel:       p.MasteryLevel,
		ReviewIntervalDays: p.ReviewIntervalDays,
	}
	p.NextReviewAt = pedagogy.NextReviewDate(item)
	p.ReviewIntervalDays = pedagogy.ScheduledIntervalDays(item)

	observed := pedagogy.SkillMetrics{
		Attempts:              p.Attempts,
		Correct:               p.Correct,
		RecentAccuracy:        p.RecentAccuracy,
		AverageResponseTimeMs: p.AverageResponseTimeMs,
		Sessions:              p.Sessions,
	}
	p.Mastered = p.Mastered || pedagogy.IsMastered(observed, s.rule)
}

// progressKey identifies one student's record for one skill
func progressKey(studentID, skillID string) string {
	return studentID + "\x00" + skillID
}

func (s *ProgressService) skillMastered(ctx context.Context, progress *models.SkillProgress) {
	log.Printf("Skill mastered: student=%s, skill=%s", progress.StudentID, progress.SkillID)
	metrics.SkillMastered()

	err := s.publisher.PublishSkillMastered(ctx, &event.SkillMasteredEvent{
		StudentID:      progress.StudentID,
		SkillID:        progress.SkillID,
		Attempts:       progress.Attempts,
		Sessions:       progress.Sessions,
		RecentAccuracy: progress.RecentAccuracy,
		NextReviewAt:   progress.NextReviewAt,
	})
	if err != nil {
		log.Printf("Failed to publish skill mastered event: %v", err)
	}
}

// ListProgress returns a student's skill progress, soonest review first
func (s *ProgressService) ListProgress(studentID string, masteredOnly bool) ([]models.SkillProgress, error) {
	if err := validation.ValidateRequired("studentId", studentID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListProgress(studentID, masteredOnly)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.SkillProgress{}
	}
	return list, nil
}

// DueForReview returns the skills whose next review is at or before now
func (s *ProgressService) DueForReview(studentID string, now time.Time) ([]models.SkillProgress, error) {
	all, err := s.ListProgress(studentID, false)
	if err != nil {
		return nil, err
	}

	due := []models.SkillProgress{}
	for _, p := range all {
		if p.DueAt(now) {
			due = append(due, p)
		}
	}
	return due, nil
}
