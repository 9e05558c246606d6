package service

import "phonicsquest/internal/models"

const (
	pointsPerCorrect = 5
	streakBonusMin   = 3
	streakBonusUnit  = 2
)

// Summarize aggregates a session's ordered attempt log. It is pure: the same
// log always yields the same summary, whether the session is finished or not.
func Summarize(sessionID string, attempts []models.Attempt) models.SessionSummary {
	summary := models.SessionSummary{
		SessionID:   sessionID,
		TotalRounds: len(attempts),
		ModeStats:   []models.ModeStats{},
	}

	var totalResponseTime, streak int
	modeIndex := make(map[string]int)

	for _, attempt := range attempts {
		totalResponseTime += attempt.ResponseTimeMs

		i, ok := modeIndex[attempt.Mode]
		if !ok {
			i = len(summary.ModeStats)
			modeIndex[attempt.Mode] = i
			summary.ModeStats = append(summary.ModeStats, models.ModeStats{Mode: attempt.Mode})
		}
		summary.ModeStats[i].Attempted++

		if attempt.IsCorrect {
			summary.CorrectRounds++
			summary.ModeStats[i].Correct++
			streak++
			if streak > summary.MaxStreak {
				summary.MaxStreak = streak
			}
		} else {
			streak = 0
		}
	}

	if summary.TotalRounds > 0 {
		summary.Accuracy = percentage(summary.CorrectRounds, summary.TotalRounds)
		summary.AverageResponseTime = float64(totalResponseTime) / float64(summary.TotalRounds)
	}
	for i := range summary.ModeStats {
		stats := &summary.ModeStats[i]
		stats.Accuracy = percentage(stats.Correct, stats.Attempted)
	}

	summary.PointsEarned = summary.CorrectRounds * pointsPerCorrect
	if summary.MaxStreak >= streakBonusMin {
		summary.PointsEarned += summary.MaxStreak * streakBonusUnit
	}

	return summary
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
