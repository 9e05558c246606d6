package event

import "time"

const (
	EventTypeSessionCompleted = "session.completed"
	EventTypeSkillMastered    = "skill.mastered"
)

// SessionCompletedEvent is published once a practice session reaches completion
type SessionCompletedEvent struct {
	EventType     string    `json:"eventType"`
	SessionID     string    `json:"sessionId"`
	StudentID     string    `json:"studentId"`
	ExerciseType  string    `json:"exerciseType"`
	Difficulty    int       `json:"difficulty"`
	TotalRounds   int       `json:"totalRounds"`
	CorrectRounds int       `json:"correctRounds"`
	Accuracy      float64   `json:"accuracy"`
	PointsEarned  int       `json:"pointsEarned"`
	MaxStreak     int       `json:"maxStreak"`
	CompletedAt   time.Time `json:"completedAt"`
	Timestamp     int64     `json:"timestamp"`
}

// SkillMasteredEvent is published the first time a student masters a skill
type SkillMasteredEvent struct {
	EventType      string    `json:"eventType"`
	StudentID      string    `json:"studentId"`
	SkillID        string    `json:"skillId"`
	Attempts       int       `json:"attempts"`
	Sessions       int       `json:"sessions"`
	RecentAccuracy float64   `json:"recentAccuracy"`
	NextReviewAt   time.Time `json:"nextReviewAt"`
	Timestamp      int64     `json:"timestamp"`
}
