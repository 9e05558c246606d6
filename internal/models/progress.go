package models

import "time"

// AnonymousStudent is the student id used when a session names no student
const AnonymousStudent = "anonymous"

// SkillProgress is the accumulated practice record of one student on one skill.
// A skill is identified by its exercise type.
type SkillProgress struct {
	StudentID             string    `json:"studentId"`
	SkillID               string    `json:"skillId"`
	Attempts              int       `json:"attempts"`
	Correct               int       `json:"correct"`
	Sessions              int       `json:"sessions"`
	RecentAccuracy        float64   `json:"recentAccuracy"`
	AverageResponseTimeMs float64   `json:"averageResponseTimeMs"`
	MasteryLevel          float64   `json:"masteryLevel"`
	ReviewIntervalDays    int       `json:"reviewIntervalDays"`
	LastPracticed         time.Time `json:"lastPracticed"`
	NextReviewAt          time.Time `json:"nextReviewAt"`
	Mastered              bool      `json:"mastered"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// DueAt reports whether the skill should be reviewed at or before t
func (p SkillProgress) DueAt(t time.Time) bool {
	return !p.NextReviewAt.After(t)
}
