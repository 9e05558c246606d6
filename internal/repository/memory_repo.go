package repository

import (
	"fmt"
	"sort"
	"sync"

	"phonicsquest/internal/models"
)

// MemoryRepository keeps sessions, attempts and progress in process memory.
// It is safe for concurrent use; callers get copies, never shared records.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.PracticeSession
	attempts map[string][]models.Attempt
	progress map[string]models.SkillProgress
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]models.PracticeSession),
		attempts: make(map[string][]models.Attempt),
		progress: make(map[string]models.SkillProgress),
	}
}

func (r *MemoryRepository) GetSession(sessionID string) (*models.PracticeSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return copySession(session), nil
}

func (r *MemoryRepository) PutSession(session *models.PracticeSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = *copySession(*session)
	return nil
}

func (r *MemoryRepository) AppendAttempt(attempt *models.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[attempt.SessionID]; !ok {
		return fmt.Errorf("session %s: %w", attempt.SessionID, ErrNotFound)
	}
	r.attempts[attempt.SessionID] = append(r.attempts[attempt.SessionID], *attempt)
	return nil
}

func (r *MemoryRepository) RecordAttempt(attempt *models.Attempt, session *models.PracticeSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[attempt.SessionID]; !ok {
		return fmt.Errorf("session %s: %w", attempt.SessionID, ErrNotFound)
	}
	r.attempts[attempt.SessionID] = append(r.attempts[attempt.SessionID], *attempt)
	r.sessions[session.ID] = *copySession(*session)
	return nil
}

func (r *MemoryRepository) ListAttempts(sessionID string) ([]models.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return append([]models.Attempt(nil), r.attempts[sessionID]...), nil
}

func (r *MemoryRepository) GetProgress(studentID, skillID string) (*models.SkillProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.progress[progressKey(studentID, skillID)]
	if !ok {
		return nil, fmt.Errorf("progress %s/%s: %w", studentID, skillID, ErrNotFound)
	}
	return &p, nil
}

func (r *MemoryRepository) PutProgress(progress *models.SkillProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress[progressKey(progress.StudentID, progress.SkillID)] = *progress
	return nil
}

// UpdateProgress runs update while holding the write lock
func (r *MemoryRepository) UpdateProgress(studentID, skillID string, update ProgressUpdate) (*models.SkillProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey(studentID, skillID)
	var current *models.SkillProgress
	if p, ok := r.progress[key]; ok {
		current = &p
	}

	next, err := update(current)
	if err != nil {
		return nil, err
	}
	r.progress[key] = *next
	stored := *next
	return &stored, nil
}

func (r *MemoryRepository) ListProgress(studentID string, masteredOnly bool) ([]models.SkillProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.SkillProgress
	for _, p := range r.progress {
		if p.StudentID != studentID || (masteredOnly && !p.Mastered) {
			continue
		}
		list = append(list, p)
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].NextReviewAt.Equal(list[j].NextReviewAt) {
			return list[i].NextReviewAt.Before(list[j].NextReviewAt)
		}
		return list[i].SkillID < list[j].SkillID
	})
	return list, nil
}

func progressKey(studentID, skillID string) string {
	return studentID + "\x00" + skillID
}

func copySession(s models.PracticeSession) *models.PracticeSession {
	c := s
	if s.PausedAt != nil {
		t := *s.PausedAt
		c.PausedAt = &t
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
