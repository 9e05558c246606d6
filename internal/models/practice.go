package models

import "time"

// DefaultTargetRounds is used when a session is created without a round count
const DefaultTargetRounds = 10

// SessionStatus is the persisted lifecycle state of a practice session
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in-progress"
	StatusPaused     SessionStatus = "paused"
	StatusCompleted  SessionStatus = "completed"
)

// PracticeSession represents one practice run of a single exercise type
type PracticeSession struct {
	ID              string        `json:"id"`
	StudentID       string        `json:"studentId"`
	ExerciseType    ExerciseType  `json:"exerciseType"`
	Difficulty      int           `json:"difficulty"`
	TargetRounds    int           `json:"targetRounds"`
	RoundsCompleted int           `json:"roundsCompleted"`
	Status          SessionStatus `json:"status"`
	StartedAt       time.Time     `json:"startedAt"`
	PausedAt        *time.Time    `json:"pausedAt,omitempty"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
}

// Attempt represents a single learner response to a round
type Attempt struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"sessionId"`
	RoundID        string    `json:"roundId"`
	SelectedOption string    `json:"selectedOption"`
	CorrectOption  string    `json:"correctOption"`
	IsCorrect      bool      `json:"isCorrect"`
	ResponseTimeMs int       `json:"responseTimeMs"`
	Mode           string    `json:"mode"`
	Retries        int       `json:"retries"`
	Timestamp      time.Time `json:"timestamp"`
}

// AttemptModes lists the modes an attempt can be recorded under: the sound
// modes for sound rounds and the letter cases for letter rounds
var AttemptModes = []string{
	string(ModeBegin), string(ModeEnd), string(ModeMiddle),
	string(CaseUpper), string(CaseLower), string(CaseMixed),
}

// ValidAttemptMode reports whether mode is a known attempt mode
func ValidAttemptMode(mode string) bool {
	for _, m := range AttemptModes {
		if mode == m {
			return true
		}
	}
	return false
}

// ModeStats holds per-mode performance within a session
type ModeStats struct {
	Mode      string  `json:"mode"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// SessionSummary is derived from a session's ordered attempt log
type SessionSummary struct {
	SessionID           string      `json:"sessionId"`
	TotalRounds         int         `json:"totalRounds"`
	CorrectRounds       int         `json:"correctRounds"`
	Accuracy            float64     `json:"accuracy"` // Percentage of correct answers
	AverageResponseTime float64     `json:"averageResponseTime"`
	ModeStats           []ModeStats `json:"modeStats"`
	PointsEarned        int         `json:"pointsEarned"`
	MaxStreak           int         `json:"maxStreak"`
}
