package pedagogy

import (
	"math"
	"time"
)

// SkillMetrics are the accumulated counters for one skill.
// A zero AverageResponseTimeMs means no timing data.
type SkillMetrics struct {
	Attempts              int     `json:"attempts"`
	Correct               int     `json:"correct"`
	RecentAccuracy        float64 `json:"recentAccuracy"` // fraction, 0..1
	AverageResponseTimeMs float64 `json:"averageResponseTimeMs,omitempty"`
	Sessions              int     `json:"sessions"`
}

// MasteryRule holds the thresholds a skill must meet.
// A zero MaxAvgResponseTimeMs disables the speed criterion.
type MasteryRule struct {
	MinAccuracy          float64 `json:"minAccuracy"`
	MinAttempts          int     `json:"minAttempts"`
	MinSessions          int     `json:"minSessions"`
	MaxAvgResponseTimeMs float64 `json:"maxAvgResponseTimeMs,omitempty"`
}

// DefaultMasteryRule is used when no rule is configured
var DefaultMasteryRule = MasteryRule{
	MinAccuracy: 0.9,
	MinAttempts: 40,
	MinSessions: 2,
}

// IsMastered reports whether metrics meet every gate of rule
func IsMastered(metrics SkillMetrics, rule MasteryRule) bool {
	if metrics.Attempts < rule.MinAttempts {
		return false
	}
	if metrics.Sessions < rule.MinSessions {
		return false
	}
	if metrics.RecentAccuracy < rule.MinAccuracy {
		return false
	}
	if rule.MaxAvgResponseTimeMs > 0 && metrics.AverageResponseTimeMs > 0 &&
		metrics.AverageResponseTimeMs > rule.MaxAvgResponseTimeMs {
		return false
	}
	return true
}

// ReviewItem is the spaced-review state of one skill
type ReviewItem struct {
	SkillID            string    `json:"skillId"`
	LastPracticed      time.Time `json:"lastPracticed"`
	MasteryLevel       float64   `json:"masteryLevel"` // percentage, 0..100
	ReviewIntervalDays int       `json:"reviewIntervalDays"`
}

// ScheduledIntervalDays returns the number of days until the next review: the
// base interval scaled by mastery level, never less than one
func ScheduledIntervalDays(item ReviewItem) int {
	base := item.ReviewIntervalDays
	if base <= 0 {
		base = 1
	}

	factor := 1.0
	switch {
	case item.MasteryLevel >= 80:
		factor = 2.5
	case item.MasteryLevel >= 60:
		factor = 1.5
	}

	return max(1, int(math.Floor(float64(base)*factor)))
}

// NextReviewDate returns when item should next be reviewed
func NextReviewDate(item ReviewItem) time.Time {
	return item.LastPracticed.Add(time.Duration(ScheduledIntervalDays(item)) * 24 * time.Hour)
}

// NextReviewDateMs is NextReviewDate as epoch milliseconds
func NextReviewDateMs(item ReviewItem) int64 {
	return NextReviewDate(item).UnixMilli()
}
